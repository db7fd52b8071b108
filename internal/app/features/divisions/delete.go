// internal/app/features/divisions/delete.go
package divisions

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete deletes a division and its logo. Divisions that still have
// members or programs are refused with a notice.
//
// Route: POST /divisions/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID divisi tidak valid.", "/divisions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.DivisionsBackURL)

	d, err := h.Divisions.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Info("division delete: no document found (idempotent)", zap.String("division_id", idHex))
		http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load division failed", err, "Divisi gagal dihapus.", "/divisions")
		return
	}

	if _, err := h.Divisions.Delete(ctx, oid); err != nil {
		if errors.Is(err, divisionstore.ErrInUse) {
			http.Redirect(w, r, formutil.WithNotice(back, "in_use"), http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "delete division failed", err, "Divisi gagal dihapus.", "/divisions")
		return
	}

	h.Images.Remove(ctx, d.LogoPath)
	h.Audit.Admin(ctx, r, audit.EventDivisionDeleted, map[string]string{"division_id": idHex, "name": d.Name})
	http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
}

// HandleLogoDelete clears a division's logo and deletes the stored file.
//
// Route: POST /divisions/{id}/logo/delete
func (h *Handler) HandleLogoDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID divisi tidak valid.", "/divisions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d, err := h.Divisions.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Divisi tidak ditemukan.", "/divisions")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load division failed", err, "Logo gagal dihapus.", "/divisions")
		return
	}

	if err := h.Divisions.SetLogo(ctx, oid, "", ""); err != nil {
		h.ErrLog.LogServerError(w, r, "clear division logo failed", err, "Logo gagal dihapus.", "/divisions")
		return
	}
	h.Images.Remove(ctx, d.LogoPath)

	http.Redirect(w, r, formutil.WithNotice("/divisions?period="+d.PeriodID.Hex(), "logo_off"), http.StatusSeeOther)
}
