// internal/app/features/programs/list.go
package programs

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	programstore "github.com/osishub/osishub/internal/app/store/programs"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/markdown"
	"github.com/osishub/osishub/internal/app/system/paging"
	"github.com/osishub/osishub/internal/app/system/search"
	"github.com/osishub/osishub/internal/app/system/selectchain"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var notices = map[string]string{
	"created": "Program kerja ditambahkan.",
	"saved":   "Perubahan program kerja disimpan.",
	"deleted": "Program kerja dihapus.",
}

// validStatus returns s when it is a known program status, else "".
func validStatus(s string) string {
	for _, st := range models.ProgramStatuses {
		if st == s {
			return s
		}
	}
	return ""
}

// ServeList handles GET /programs?period=&status=&q=&start=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/dashboard")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Program Kerja", "/dashboard"),
		Status: validStatus(query.Get(r, "status")),
		Query:  search.Normalize(query.Get(r, "q")),
		Flash:  formutil.Notice(r, notices),
	}

	p, ok := periodstore.Pick(ps, query.Get(r, "period"))
	if !ok {
		templates.Render(w, r, "program_list", data)
		return
	}
	data.PeriodID = p.ID.Hex()
	data.Picker = shared.NewPeriodPicker("/programs", ps, data.PeriodID)
	if data.Status != "" {
		data.Picker.Keep = map[string]string{"status": data.Status}
	}

	counts, err := h.Programs.CountByStatus(ctx, p.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count programs failed", err, "Daftar program tidak dapat dimuat.", "/dashboard")
		return
	}
	data.Tabs = statusTabs(counts, data.Status)

	filter := programstore.Filter(p.ID, data.Status)
	search.PrefixFilter(filter, "title_ci", data.Query)

	win := paging.FromRequest(r)
	progs, err := h.Programs.Find(ctx, filter, win.ApplyToFind(options.Find().SetSort(programstore.DefaultSort())))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list programs failed", err, "Daftar program tidak dapat dimuat.", "/dashboard")
		return
	}
	total, err := h.Programs.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count programs failed", err, "Daftar program tidak dapat dimuat.", "/dashboard")
		return
	}

	data.Items, err = h.listItems(ctx, p.ID, progs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve program names failed", err, "Daftar program tidak dapat dimuat.", "/dashboard")
		return
	}
	data.Pager = shared.NewPager(paging.ComputeRange(win, len(progs), total), url.Values{
		"period": {data.PeriodID},
		"status": {data.Status},
		"q":      {data.Query},
	})

	templates.Render(w, r, "program_list", data)
}

func statusTabs(counts map[string]int64, active string) []statusTab {
	var all int64
	tabs := make([]statusTab, 0, len(models.ProgramStatuses)+1)
	for _, s := range models.ProgramStatuses {
		all += counts[s]
		tabs = append(tabs, statusTab{Value: s, Label: s, Count: counts[s], Active: s == active})
	}
	return append([]statusTab{{Label: "Semua", Count: all, Active: active == ""}}, tabs...)
}

// listItems resolves division and responsible names for one period.
func (h *Handler) listItems(ctx context.Context, periodID primitive.ObjectID, progs []models.Program) ([]listItem, error) {
	ds, err := h.Divisions.Find(ctx, bson.M{"period_id": periodID})
	if err != nil {
		return nil, err
	}
	divNames := make(map[primitive.ObjectID]string, len(ds))
	for _, d := range ds {
		divNames[d.ID] = d.Name
	}

	var ids []primitive.ObjectID
	for _, p := range progs {
		if p.ResponsibleID != nil {
			ids = append(ids, *p.ResponsibleID)
		}
	}
	people := map[primitive.ObjectID]string{}
	if len(ids) > 0 {
		ms, err := h.Members.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		for _, m := range ms {
			people[m.ID] = m.FullName
		}
	}

	out := make([]listItem, 0, len(progs))
	for _, p := range progs {
		it := listItem{Program: p, DivisionName: selectchain.GeneralDivisionLabel, Excerpt: markdown.Excerpt(p.Description, 120)}
		if p.DivisionID != nil {
			it.DivisionName = divNames[*p.DivisionID]
		}
		if p.ResponsibleID != nil {
			it.ResponsibleName = people[*p.ResponsibleID]
		}
		out = append(out, it)
	}
	return out, nil
}
