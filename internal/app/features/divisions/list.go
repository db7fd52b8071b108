// internal/app/features/divisions/list.go
package divisions

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
)

var notices = map[string]string{
	"created":   "Divisi berhasil dibuat.",
	"saved":     "Perubahan divisi disimpan.",
	"deleted":   "Divisi dihapus.",
	"reordered": "Urutan divisi disimpan.",
	"logo_off":  "Logo divisi dihapus.",
	"in_use":    "Divisi masih memiliki anggota atau program kerja. Pindahkan atau hapus terlebih dahulu.",
}

// ServeList handles GET /divisions?period=. Without a period it shows the
// active one.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/dashboard")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Divisi", "/dashboard"),
		Flash:  formutil.Notice(r, notices),
	}

	p, ok := periodstore.Pick(ps, query.Get(r, "period"))
	if ok {
		data.PeriodID = p.ID.Hex()
		ds, err := h.Divisions.ListByPeriod(ctx, p.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list divisions failed", err, "Daftar divisi tidak dapat dimuat.", "/dashboard")
			return
		}
		for i, d := range ds {
			data.Items = append(data.Items, listItem{Division: d, Position: i + 1})
		}
	}
	data.Picker = shared.NewPeriodPicker("/divisions", ps, data.PeriodID)

	templates.Render(w, r, "division_list", data)
}
