// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/paging"
	"github.com/osishub/osishub/internal/app/system/search"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var notices = map[string]string{
	"created":   "Anggota ditambahkan.",
	"saved":     "Perubahan anggota disimpan.",
	"deleted":   "Anggota dihapus.",
	"photo_off": "Foto anggota dihapus.",
}

// ServeList handles GET /members?period=&division=&q=&start=. Members are
// listed by name within one period, a page at a time.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/dashboard")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Anggota", "/dashboard"),
		Query:  search.Normalize(query.Get(r, "q")),
		Flash:  formutil.Notice(r, notices),
	}

	p, ok := periodstore.Pick(ps, query.Get(r, "period"))
	if !ok {
		templates.Render(w, r, "member_list", data)
		return
	}
	data.PeriodID = p.ID.Hex()
	data.Picker = shared.NewPeriodPicker("/members", ps, data.PeriodID)

	data.Divisions, err = h.Divisions.ListByPeriod(ctx, p.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list divisions failed", err, "Daftar anggota tidak dapat dimuat.", "/dashboard")
		return
	}
	divNames := make(map[primitive.ObjectID]string, len(data.Divisions))
	for _, d := range data.Divisions {
		divNames[d.ID] = d.Name
	}

	filter := bson.M{"period_id": p.ID}
	if did, err := primitive.ObjectIDFromHex(query.Get(r, "division")); err == nil {
		if _, known := divNames[did]; known {
			filter["division_id"] = did
			data.Division = did.Hex()
		}
	}
	search.PrefixFilter(filter, "full_name_ci", data.Query)

	win := paging.FromRequest(r)
	find := win.ApplyToFind(options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	ms, err := h.Members.Find(ctx, filter, find)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members failed", err, "Daftar anggota tidak dapat dimuat.", "/dashboard")
		return
	}
	total, err := h.Members.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count members failed", err, "Daftar anggota tidak dapat dimuat.", "/dashboard")
		return
	}

	posNames, err := h.positionNames(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list positions failed", err, "Daftar anggota tidak dapat dimuat.", "/dashboard")
		return
	}

	data.Items = make([]listItem, 0, len(ms))
	for _, m := range ms {
		it := listItem{Member: m, DivisionName: divNames[m.DivisionID]}
		if m.PositionID != nil {
			it.PositionName = posNames[*m.PositionID]
		}
		data.Items = append(data.Items, it)
	}
	data.Pager = shared.NewPager(paging.ComputeRange(win, len(ms), total), url.Values{
		"period":   {data.PeriodID},
		"division": {data.Division},
		"q":        {data.Query},
	})

	templates.Render(w, r, "member_list", data)
}

func (h *Handler) positionNames(ctx context.Context) (map[primitive.ObjectID]string, error) {
	pos, err := h.Positions.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]string, len(pos))
	for _, p := range pos {
		out[p.ID] = p.Name
	}
	return out, nil
}
