// internal/app/features/dashboard/activity.go
package dashboard

import (
	"context"

	"github.com/osishub/osishub/internal/app/store/audit"
)

// activityLimit is how many admin actions the dashboard lists.
const activityLimit = 10

type activityRow struct {
	When   string
	Actor  string
	Action string
	Target string
}

// recentActivity lists the latest admin actions, newest first.
func (h *Handler) recentActivity(ctx context.Context) ([]activityRow, error) {
	events, err := h.Audit.Recent(ctx, audit.CategoryAdmin, activityLimit)
	if err != nil {
		return nil, err
	}
	rows := make([]activityRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, activityRow{
			When:   e.Timestamp.Local().Format("02 Jan 2006 15:04"),
			Actor:  actorName(e),
			Action: audit.Label(e.EventType),
			Target: target(e.Details),
		})
	}
	return rows, nil
}

func actorName(e audit.Event) string {
	if e.ActorName != "" {
		return e.ActorName
	}
	return "-"
}

// target picks the most readable detail: a name, then a page, then a count.
func target(details map[string]string) string {
	if n := details["name"]; n != "" {
		return n
	}
	if p := details["page"]; p != "" {
		return "halaman " + p
	}
	if c := details["count"]; c != "" {
		return c + " baris"
	}
	return ""
}
