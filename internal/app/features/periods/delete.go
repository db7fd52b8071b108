// internal/app/features/periods/delete.go
package periods

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete deletes a period and redirects back to the list. The active
// period and periods that still own divisions are refused with a notice.
//
// Route: POST /periods/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID periode tidak valid.", "/periods")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.PeriodsBackURL)

	n, err := h.Periods.Delete(ctx, oid)
	switch {
	case errors.Is(err, periodstore.ErrActive):
		http.Redirect(w, r, formutil.WithNotice(back, "active"), http.StatusSeeOther)
		return
	case errors.Is(err, periodstore.ErrInUse):
		http.Redirect(w, r, formutil.WithNotice(back, "in_use"), http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "delete period failed", err, "Periode gagal dihapus.", "/periods")
		return
	}

	if n == 0 {
		h.Log.Info("period delete: no document found (idempotent)", zap.String("period_id", idHex))
	} else {
		h.Audit.Admin(ctx, r, audit.EventPeriodDeleted, map[string]string{"period_id": idHex})
	}
	http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
}
