// internal/app/features/positions/list.go
package positions

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
	"created": "Jabatan ditambahkan.",
	"saved":   "Perubahan jabatan disimpan.",
	"deleted": "Jabatan dihapus.",
	"in_use":  "Jabatan masih dipakai anggota dan tidak dapat dihapus.",
}

// ServeList handles GET /positions: the catalog with holder counts across
// all periods.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ps, err := h.Positions.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list positions failed", err, "Daftar jabatan tidak dapat dimuat.", "/dashboard")
		return
	}
	items := make([]listItem, 0, len(ps))
	for _, p := range ps {
		n, err := h.Members.Count(ctx, bson.M{"position_id": p.ID})
		if err != nil {
			h.ErrLog.LogServerError(w, r, "count position holders failed", err, "Daftar jabatan tidak dapat dimuat.", "/dashboard")
			return
		}
		items = append(items, listItem{Position: p, Holders: n})
	}

	templates.Render(w, r, "position_list", listData{
		BaseVM: viewdata.NewBaseVM(r, "Master Jabatan", "/dashboard"),
		Items:  items,
		Flash:  formutil.Notice(r, notices),
	})
}
