// internal/app/features/contents/delete.go
package contents

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete removes a block and its image. Remaining ranks keep their
// gap until the page is reordered.
//
// Route: POST /contents/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.contentID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.ContentsBackURL)

	c, err := h.Contents.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Info("content delete: no document found (idempotent)", zap.String("content_id", oid.Hex()))
		http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load content failed", err, "Konten gagal dihapus.", "/contents")
		return
	}

	if _, err := h.Contents.Delete(ctx, oid); err != nil {
		h.ErrLog.LogServerError(w, r, "delete content failed", err, "Konten gagal dihapus.", "/contents")
		return
	}
	h.Images.Remove(ctx, c.ImagePath)
	h.Audit.Admin(ctx, r, audit.EventContentDeleted, map[string]string{"content_id": oid.Hex(), "page": c.Page})

	http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
}

// HandleImageDelete clears a block's image.
//
// Route: POST /contents/{id}/image/delete
func (h *Handler) HandleImageDelete(w http.ResponseWriter, r *http.Request) {
	oid, ok := h.contentID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Contents.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Konten tidak ditemukan.", "/contents")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load content failed", err, "Gambar gagal dihapus.", "/contents")
		return
	}

	if err := h.Contents.SetImage(ctx, oid, "", ""); err != nil {
		h.ErrLog.LogServerError(w, r, "clear content image failed", err, "Gambar gagal dihapus.", "/contents")
		return
	}
	h.Images.Remove(ctx, c.ImagePath)

	http.Redirect(w, r, formutil.WithNotice("/contents?page="+c.Page, "image_off"), http.StatusSeeOther)
}
