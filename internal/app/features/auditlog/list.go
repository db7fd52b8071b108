// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/paging"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
)

const dateLayout = "2006-01-02"

// ServeList handles GET /audit with category, event type and date filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Log Audit", "/dashboard"),
		Categories: categoryOptions(),
	}
	filter := parseFilter(r, &data)
	data.EventTypes = eventTypeOptions(data.Category)

	win := paging.FromRequest(r)
	filter.Limit = int64(win.Limit)
	filter.Skip = win.Skip()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events failed", err, "Log audit tidak dapat dimuat.", "/dashboard")
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events failed", err, "Log audit tidak dapat dimuat.", "/dashboard")
		return
	}

	data.Items = make([]listItem, 0, len(events))
	for _, e := range events {
		data.Items = append(data.Items, toItem(e))
	}
	data.Pager = shared.NewPager(paging.ComputeRange(win, len(events), total), url.Values{
		"category":   {data.Category},
		"event_type": {data.EventType},
		"start_date": {data.StartDate},
		"end_date":   {data.EndDate},
	})

	templates.Render(w, r, "audit_list", data)
}

// parseFilter reads the filter query parameters into data and returns the
// matching store filter. Unknown categories and malformed dates are dropped.
func parseFilter(r *http.Request, data *listData) audit.QueryFilter {
	var f audit.QueryFilter

	switch c := query.Get(r, "category"); c {
	case audit.CategoryAuth, audit.CategoryAdmin:
		f.Category = c
	}
	data.Category = f.Category

	if et := query.Get(r, "event_type"); et != "" {
		for _, o := range eventTypeOptions(f.Category) {
			if o.Value == et {
				f.EventType = et
				break
			}
		}
	}
	data.EventType = f.EventType

	if t, err := time.ParseInLocation(dateLayout, query.Get(r, "start_date"), time.Local); err == nil {
		since := t.UTC()
		f.Since = &since
		data.StartDate = t.Format(dateLayout)
	}
	if t, err := time.ParseInLocation(dateLayout, query.Get(r, "end_date"), time.Local); err == nil {
		until := t.Add(24*time.Hour - time.Nanosecond).UTC()
		f.Until = &until
		data.EndDate = t.Format(dateLayout)
	}
	return f
}

func toItem(e audit.Event) listItem {
	item := listItem{
		When:      e.Timestamp.Local().Format("02 Jan 2006 15:04:05"),
		Category:  e.Category,
		Action:    audit.Label(e.EventType),
		ActorName: e.ActorName,
		IP:        e.IP,
		Success:   e.Success,
		Reason:    e.FailureReason,
	}
	for k, v := range e.Details {
		item.Details = append(item.Details, detail{Key: k, Value: v})
	}
	sort.Slice(item.Details, func(i, j int) bool { return item.Details[i].Key < item.Details[j].Key })
	return item
}
