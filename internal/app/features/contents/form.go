// internal/app/features/contents/form.go
package contents

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/markdown"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, title, id string, f contentForm, errMsg string) {
	action := "/contents"
	if id != "" {
		action = "/contents/" + id + "/edit"
	}
	data := formData{ID: id, Action: action, Pages: models.Pages, contentForm: f}
	formutil.SetBase(&data.Base, r, title, "/contents?page="+pickPage(f.Page))
	if errMsg != "" {
		data.SetError(errMsg)
	}
	templates.Render(w, r, "content_form", data)
}

// ServeNew renders the new block form for ?page=.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "Konten Baru", "", contentForm{Page: pickPage(query.Get(r, "page"))}, "")
}

// HandleCreate appends a block to the end of its page.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := uploads.ParseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid atau berkas terlalu besar.", "/contents")
		return
	}

	form, input := readContentForm(r)
	if result := inputval.Validate(input); result.HasErrors() {
		h.renderForm(w, r, "Konten Baru", "", form, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c, err := h.Contents.Create(ctx, input.model())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create content failed", err, "Konten gagal disimpan.", "/contents")
		return
	}

	if msg := h.storeImage(ctx, r, c); msg != "" {
		h.renderForm(w, r, "Ubah Konten", c.ID.Hex(), formFromContent(c), "Konten tersimpan, tetapi gambar gagal diunggah: "+msg)
		return
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.ContentsBackURL), "created"), http.StatusSeeOther)
}

// ServeEdit renders the edit form for one block.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.contentID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Contents.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Konten tidak ditemukan.", "/contents")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load content failed", err, "Konten tidak dapat dimuat.", "/contents")
		return
	}
	h.renderForm(w, r, "Ubah Konten", oid.Hex(), formFromContent(c), "")
}

// HandleEdit updates title and body and replaces the image when a new one
// is sent. The page of a block does not change.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.contentID(w, r)
	if !ok {
		return
	}
	if err := uploads.ParseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid atau berkas terlalu besar.", "/contents")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	current, err := h.Contents.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Konten tidak ditemukan.", "/contents")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load content failed", err, "Konten tidak dapat dimuat.", "/contents")
		return
	}

	form, input := readContentForm(r)
	form.Page, input.Page = current.Page, current.Page
	form.ImageURL = current.ImageURL
	if result := inputval.Validate(input); result.HasErrors() {
		h.renderForm(w, r, "Ubah Konten", oid.Hex(), form, result.First())
		return
	}

	if err := h.Contents.Update(ctx, oid, input.model()); err != nil {
		h.ErrLog.LogServerError(w, r, "update content failed", err, "Perubahan gagal disimpan.", "/contents")
		return
	}
	if msg := h.storeImage(ctx, r, current); msg != "" {
		h.renderForm(w, r, "Ubah Konten", oid.Hex(), form, "Perubahan tersimpan, tetapi gambar gagal diunggah: "+msg)
		return
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.ContentsBackURL), "saved"), http.StatusSeeOther)
}

// HandlePreview renders the markdown body as it will appear on the site.
//
// Route: POST /contents/preview
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.HTMXLogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/contents")
		return
	}
	templates.Render(w, r, "content_preview", previewData{HTML: markdown.ToHTML(r.FormValue("body"))})
}

func (h *Handler) contentID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID konten tidak valid.", "/contents")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// storeImage saves an uploaded image for c and removes the one it replaces.
// It returns a user message on failure and "" on success or when no file
// was sent.
func (h *Handler) storeImage(ctx context.Context, r *http.Request, c models.PageContent) string {
	saved, err := h.Images.Save(ctx, r, "image", "contents")
	if errors.Is(err, uploads.ErrNoFile) {
		return ""
	}
	if err != nil {
		if msg := uploads.Message(err); msg != "" {
			return msg
		}
		h.Log.Error("content image upload failed", zap.String("content_id", c.ID.Hex()), zap.Error(err))
		return "Gambar gagal diunggah. Coba lagi."
	}
	if err := h.Contents.SetImage(ctx, c.ID, saved.URL, saved.Path); err != nil {
		h.Log.Error("set content image failed", zap.String("content_id", c.ID.Hex()), zap.Error(err))
		h.Images.Remove(ctx, saved.Path)
		return "Gambar gagal disimpan. Coba lagi."
	}
	h.Images.Remove(ctx, c.ImagePath)
	return ""
}
