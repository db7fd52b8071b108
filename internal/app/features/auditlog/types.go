// internal/app/features/auditlog/types.go
package auditlog

import (
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/viewdata"
)

// listItem is one audit event row.
type listItem struct {
	When      string
	Category  string
	Action    string
	ActorName string
	IP        string
	Success   bool
	Reason    string
	Details   []detail
}

type detail struct {
	Key   string
	Value string
}

// listData is the view model for the audit log page.
type listData struct {
	viewdata.BaseVM

	Items []listItem
	Pager shared.Pager

	// Filters
	Category  string
	EventType string
	StartDate string
	EndDate   string

	Categories []option
	EventTypes []option
}

type option struct {
	Value string
	Label string
}

func categoryOptions() []option {
	return []option{
		{Value: audit.CategoryAuth, Label: "Autentikasi"},
		{Value: audit.CategoryAdmin, Label: "Administrasi"},
	}
}

// eventTypeOptions lists the event types of category, or all of them when
// category is empty.
func eventTypeOptions(category string) []option {
	var types []string
	switch category {
	case audit.CategoryAuth:
		types = audit.AuthEvents
	case audit.CategoryAdmin:
		types = audit.AdminEvents
	default:
		types = append(append([]string{}, audit.AuthEvents...), audit.AdminEvents...)
	}
	out := make([]option, 0, len(types))
	for _, t := range types {
		out = append(out, option{Value: t, Label: audit.Label(t)})
	}
	return out
}
