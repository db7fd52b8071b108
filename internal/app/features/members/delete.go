// internal/app/features/members/delete.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete removes a member and its photo. Programs that named the
// member as responsible lose that reference.
//
// Route: POST /members/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID anggota tidak valid.", "/members")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.MembersBackURL)

	m, err := h.Members.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Info("member delete: no document found (idempotent)", zap.String("member_id", idHex))
		http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load member failed", err, "Anggota gagal dihapus.", "/members")
		return
	}

	if _, err := h.Members.Delete(ctx, oid); err != nil {
		h.ErrLog.LogServerError(w, r, "delete member failed", err, "Anggota gagal dihapus.", "/members")
		return
	}
	h.Images.Remove(ctx, m.PhotoPath)
	h.Audit.Admin(ctx, r, audit.EventMemberDeleted, map[string]string{"member_id": idHex, "name": m.FullName})

	http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
}

// HandlePhotoDelete clears a member's photo and deletes the stored file.
//
// Route: POST /members/{id}/photo/delete
func (h *Handler) HandlePhotoDelete(w http.ResponseWriter, r *http.Request) {
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
		h.ErrLog.LogServerError(w, r, "load member failed", err, "Foto gagal dihapus.", "/members")
		return
	}
	if err := h.Members.SetPhoto(ctx, oid, "", ""); err != nil {
		h.ErrLog.LogServerError(w, r, "clear member photo failed", err, "Foto gagal dihapus.", "/members")
		return
	}
	h.Images.Remove(ctx, m.PhotoPath)

	http.Redirect(w, r, formutil.WithNotice("/members?period="+m.PeriodID.Hex(), "photo_off"), http.StatusSeeOther)
}
