// internal/app/features/periods/activate.go
package periods

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

// HandleActivate makes one period the active cabinet.
//
// Route: POST /periods/{id}/activate
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID periode tidak valid.", "/periods")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.PeriodsBackURL)

	if err := h.Periods.Activate(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Redirect(w, r, formutil.WithNotice(back, "missing"), http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "activate period failed", err, "Periode gagal diaktifkan. Coba lagi.", "/periods")
		return
	}

	h.Log.Info("period activated", zap.String("period_id", idHex))
	h.Audit.Admin(ctx, r, audit.EventPeriodActivated, map[string]string{"period_id": idHex})
	http.Redirect(w, r, formutil.WithNotice(back, "activated"), http.StatusSeeOther)
}
