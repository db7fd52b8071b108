// internal/app/features/divisions/reorder.go
package divisions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/store/audit"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/reorder"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"go.uber.org/zap"
)

// reorderScope loads the period named by the "period" value (query or form,
// defaulting to the active period) and its divisions as reorder items.
func (h *Handler) reorderScope(ctx context.Context, periodHex string) (models.Period, []reorder.Item, bool, error) {
	ps, err := h.Periods.List(ctx)
	if err != nil {
		return models.Period{}, nil, false, err
	}
	p, ok := periodstore.Pick(ps, periodHex)
	if !ok {
		return models.Period{}, nil, false, nil
	}
	ds, err := h.Divisions.ListByPeriod(ctx, p.ID)
	if err != nil {
		return models.Period{}, nil, false, err
	}
	items := make([]reorder.Item, len(ds))
	for i, d := range ds {
		items[i] = reorder.Item{ID: d.ID.Hex(), Label: d.Name, Rank: d.Rank}
	}
	return p, items, true, nil
}

func (h *Handler) reorderData(r *http.Request, p models.Period, l *reorder.List) shared.ReorderData {
	return shared.ReorderData{
		BaseVM:     viewdata.NewBaseVM(r, "Urutkan Divisi", "/divisions?period="+p.ID.Hex()),
		Heading:    "Urutkan Divisi: " + p.Label(),
		Action:     "/divisions/reorder",
		ScopeName:  "period",
		ScopeValue: p.ID.Hex(),
		Rows:       shared.ReorderRows(l),
	}
}

// ServeReorder opens the reorder surface for one period. The order always
// starts from the stored ranks.
//
// Route: GET /divisions/reorder?period=
func (h *Handler) ServeReorder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, items, ok, err := h.reorderScope(ctx, query.Get(r, "period"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load divisions for reorder failed", err, "Daftar divisi tidak dapat dimuat.", "/divisions")
		return
	}
	if !ok {
		uierrors.RenderNotFound(w, r, "Belum ada periode. Buat periode terlebih dahulu.", "/periods")
		return
	}

	templates.Render(w, r, "reorder_page", h.reorderData(r, p, reorder.New(items)))
}

// HandleReorderMove applies one up/down move to the order carried in the
// form and re-renders the list. Nothing is written.
//
// Route: POST /divisions/reorder/move?index=&dir=
func (h *Handler) HandleReorderMove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.HTMXLogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/divisions")
		return
	}
	mv, ok := shared.ParseReorderMove(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "Perpindahan tidak valid.", "/divisions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, items, found, err := h.reorderScope(ctx, r.FormValue("period"))
	if err != nil {
		h.ErrLog.HTMXLogServerError(w, r, "load divisions for reorder failed", err, "Daftar divisi tidak dapat dimuat.", "/divisions")
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Periode tidak ditemukan.", "/periods")
		return
	}

	l := reorder.FromIDs(mv.Order, items)
	l.Move(mv.Index, mv.Dir)

	data := h.reorderData(r, p, l)
	if r.Header.Get("HX-Request") != "" {
		templates.Render(w, r, "reorder_list", data)
		return
	}
	templates.Render(w, r, "reorder_page", data)
}

// HandleReorderCommit writes rank = position for every division in the
// submitted order, one write at a time. A failed write stops the commit;
// ranks already written stay, and the page names the division that failed.
//
// Route: POST /divisions/reorder
func (h *Handler) HandleReorderCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/divisions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	p, items, found, err := h.reorderScope(ctx, r.FormValue("period"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load divisions for reorder failed", err, "Daftar divisi tidak dapat dimuat.", "/divisions")
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Periode tidak ditemukan.", "/periods")
		return
	}

	l := reorder.FromIDs(shared.ParseReorderOrder(r), items)
	if err := l.Commit(ctx, h.Divisions); err != nil {
		var ce *reorder.CommitError
		if errors.As(err, &ce) {
			h.Log.Error("division reorder stopped",
				zap.String("period_id", p.ID.Hex()),
				zap.String("division_id", ce.Item.ID),
				zap.Int("written", ce.Written),
				zap.Error(ce.Err))
			uierrors.RenderServerError(w, r,
				"Urutan gagal disimpan pada divisi \""+ce.Item.Label+"\". Sebagian urutan baru sudah tersimpan; buka kembali halaman urutan untuk mencoba lagi.",
				"/divisions/reorder?period="+p.ID.Hex())
			return
		}
		h.ErrLog.LogServerError(w, r, "division reorder failed", err, "Urutan gagal disimpan.", "/divisions")
		return
	}

	h.Log.Info("divisions reordered", zap.String("period_id", p.ID.Hex()), zap.Int("count", l.Len()))
	h.Audit.Admin(ctx, r, audit.EventDivisionsReordered, map[string]string{"period_id": p.ID.Hex()})
	http.Redirect(w, r, formutil.WithNotice("/divisions?period="+p.ID.Hex(), "reordered"), http.StatusSeeOther)
}
