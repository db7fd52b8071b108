// internal/app/features/members/form.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const clearedMsg = "Divisi atau jabatan yang dipilih tidak cocok dengan pilihan di atasnya dan telah dikosongkan. Periksa kembali."

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, title, id string, f memberForm, st cascade.State, errMsg string) {
	action := "/members"
	if id != "" {
		action = "/members/" + id + "/edit"
	}
	back := "/members"
	if sel := st.Selected(); len(sel) > 0 && sel[0] != "" {
		back += "?period=" + sel[0]
	}
	data := formData{ID: id, Action: action, Cascade: newCascadeFields(st), memberForm: f}
	formutil.SetBase(&data.Base, r, title, back)
	if errMsg != "" {
		data.SetError(errMsg)
	}
	templates.Render(w, r, "member_form", data)
}

// ServeNew renders the new member form. The period starts at ?period= or
// the active period.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	chain, err := h.memberChain(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member chain failed", err, "Formulir anggota tidak dapat dimuat.", "/members")
		return
	}

	period := query.Get(r, "period")
	if period == "" {
		if p, err := h.Periods.Active(ctx); err == nil {
			period = p.ID.Hex()
		}
	}
	st := chain.Resolve([]string{period, query.Get(r, "division"), ""})
	h.renderForm(w, r, "Anggota Baru", "", memberForm{Gender: models.GenderMale}, st, "")
}

// HandleCreate stores a new member and an optional photo.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// ServeEdit renders the edit form for one member.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID anggota tidak valid.", "/members")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Members.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Anggota tidak ditemukan.", "/members")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member failed", err, "Anggota tidak dapat dimuat.", "/members")
		return
	}

	chain, err := h.memberChain(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member chain failed", err, "Formulir anggota tidak dapat dimuat.", "/members")
		return
	}

	f, sel := formFromMember(m)
	st := chain.Resolve(sel)
	msg := ""
	if st.AnyCleared() {
		// A catalog change (e.g. the position's kind) left the stored
		// combination invalid; show the cleared field now, not on save.
		msg = clearedMsg
	}
	h.renderForm(w, r, "Ubah Anggota", idHex, f, st, msg)
}

// HandleEdit processes the edit form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	if _, err := primitive.ObjectIDFromHex(idHex); err != nil {
		uierrors.RenderBadRequest(w, r, "ID anggota tidak valid.", "/members")
		return
	}
	h.save(w, r, idHex)
}

// save is shared by create (idHex == "") and edit.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, idHex string) {
	if err := uploads.ParseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid atau berkas terlalu besar.", "/members")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	title := "Anggota Baru"
	var current models.Member
	if idHex != "" {
		title = "Ubah Anggota"
		oid, _ := primitive.ObjectIDFromHex(idHex)
		var err error
		current, err = h.Members.GetByID(ctx, oid)
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Anggota tidak ditemukan.", "/members")
			return
		}
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load member failed", err, "Anggota tidak dapat dimuat.", "/members")
			return
		}
	}

	form, sel := readMemberForm(r)
	form.PhotoURL = current.PhotoURL

	chain, err := h.memberChain(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member chain failed", err, "Anggota gagal disimpan.", "/members")
		return
	}
	st := chain.Resolve(sel)

	renderWithError := func(msg string) {
		h.renderForm(w, r, title, idHex, form, st, msg)
	}

	if st.AnyCleared() {
		renderWithError(clearedMsg)
		return
	}
	input := newInput(form, st.Selected())
	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	m := input.model()
	if idHex == "" {
		m, err = h.Members.Create(ctx, m)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "create member failed", err, "Anggota gagal disimpan.", "/members")
			return
		}
	} else {
		if err := h.Members.Update(ctx, current.ID, m); err != nil {
			h.ErrLog.LogServerError(w, r, "update member failed", err, "Perubahan gagal disimpan.", "/members")
			return
		}
		m.ID = current.ID
		m.PhotoPath = current.PhotoPath
	}

	if msg := h.storePhoto(ctx, r, m); msg != "" {
		idHex = m.ID.Hex()
		title = "Ubah Anggota"
		renderWithError("Data anggota tersimpan, tetapi foto gagal diunggah: " + msg)
		return
	}

	notice := "saved"
	if current.ID.IsZero() {
		notice = "created"
	}
	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.MembersBackURL), notice), http.StatusSeeOther)
}

// storePhoto saves an uploaded photo for m and removes the one it replaces.
// It returns a user message on failure and "" on success or when no file
// was sent.
func (h *Handler) storePhoto(ctx context.Context, r *http.Request, m models.Member) string {
	saved, err := h.Images.Save(ctx, r, "photo", "members")
	if errors.Is(err, uploads.ErrNoFile) {
		return ""
	}
	if err != nil {
		if msg := uploads.Message(err); msg != "" {
			return msg
		}
		h.Log.Error("member photo upload failed", zap.String("member_id", m.ID.Hex()), zap.Error(err))
		return "Foto gagal diunggah. Coba lagi."
	}
	if err := h.Members.SetPhoto(ctx, m.ID, saved.URL, saved.Path); err != nil {
		h.Log.Error("set member photo failed", zap.String("member_id", m.ID.Hex()), zap.Error(err))
		h.Images.Remove(ctx, saved.Path)
		return "Foto gagal disimpan. Coba lagi."
	}
	h.Images.Remove(ctx, m.PhotoPath)
	return ""
}
