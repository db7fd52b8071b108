// internal/app/features/periods/list.go
package periods

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson"
)

var notices = map[string]string{
	"created":   "Periode berhasil dibuat.",
	"saved":     "Perubahan periode disimpan.",
	"deleted":   "Periode dihapus.",
	"activated": "Periode diaktifkan. Situs publik kini menampilkan kabinet ini.",
	"active":    "Periode aktif tidak dapat dihapus. Aktifkan periode lain terlebih dahulu.",
	"in_use":    "Periode masih memiliki divisi. Hapus divisinya terlebih dahulu.",
	"missing":   "Periode tidak ditemukan.",
}

// ServeList handles GET /periods. Newest period first, with division counts.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.listItems(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/dashboard")
		return
	}

	templates.Render(w, r, "period_list", listData{
		BaseVM: viewdata.NewBaseVM(r, "Periode Kepengurusan", "/dashboard"),
		Items:  items,
		Flash:  formutil.Notice(r, notices),
	})
}

func (h *Handler) listItems(ctx context.Context) ([]listItem, error) {
	ps, err := h.Periods.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]listItem, 0, len(ps))
	for _, p := range ps {
		n, err := h.Divisions.Count(ctx, bson.M{"period_id": p.ID})
		if err != nil {
			return nil, err
		}
		items = append(items, listItem{Period: p, DivisionsCount: n})
	}
	return items, nil
}
