// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	metricsstore "github.com/osishub/osishub/internal/app/store/metrics"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type statusCount struct {
	Status string
	Count  int64
}

type pageCount struct {
	Key   string
	Name  string
	Count int64
}

type adminData struct {
	viewdata.BaseVM

	Period *models.Period
	Counts metricsstore.Counts

	ProgramsByStatus []statusCount
	ContentsByPage   []pageCount

	Activity []activityRow
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load active period failed", err, "Dasbor tidak dapat dimuat.", "/")
		return
	}
	data.BaseVM = viewdata.NewBaseVM(r, "Dasbor", "/")

	h.Log.Debug("admin dashboard served", zap.String("user", data.UserName))

	templates.Render(w, r, "admin_dashboard", data)
}

// load gathers the counts for the active period. With no active period only
// the global counters are filled.
func (h *Handler) load(ctx context.Context) (adminData, error) {
	var data adminData

	periodID := primitive.NilObjectID
	p, err := h.Periods.Active(ctx)
	switch {
	case err == nil:
		data.Period = &p
		periodID = p.ID
	case !errors.Is(err, mongo.ErrNoDocuments):
		return data, err
	}

	data.Counts = metricsstore.FetchDashboardCounts(ctx, h.DB, periodID)
	for _, st := range models.ProgramStatuses {
		data.ProgramsByStatus = append(data.ProgramsByStatus, statusCount{Status: st, Count: data.Counts.ProgramsByStatus[st]})
	}
	for _, pg := range models.Pages {
		data.ContentsByPage = append(data.ContentsByPage, pageCount{Key: pg.Key, Name: pg.Name, Count: data.Counts.ContentsByPage[pg.Key]})
	}

	data.Activity, err = h.recentActivity(ctx)
	if err != nil {
		return data, err
	}
	return data, nil
}
