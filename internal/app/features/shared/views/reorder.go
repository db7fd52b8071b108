// internal/app/features/shared/views/reorder.go
package shared

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/osishub/osishub/internal/app/system/reorder"
	"github.com/osishub/osishub/internal/app/system/viewdata"
)

// ReorderRow is one line of the reorder surface.
type ReorderRow struct {
	Index   int
	Pos     int
	ID      string
	Label   string
	CanUp   bool
	CanDown bool
}

// ReorderData feeds the "reorder_page" and "reorder_list" templates. The
// current order travels in hidden "order" inputs between move requests;
// nothing is stored until the commit form is posted.
type ReorderData struct {
	viewdata.BaseVM
	Heading    string
	Action     string // commit URL; moves post to Action + "/move"
	ScopeName  string // e.g. "period"
	ScopeValue string
	Rows       []ReorderRow
	Error      string
}

// ReorderRows lists l for display.
func ReorderRows(l *reorder.List) []ReorderRow {
	items := l.Items()
	rows := make([]ReorderRow, len(items))
	for i, it := range items {
		rows[i] = ReorderRow{
			Index:   i,
			Pos:     i + 1,
			ID:      it.ID,
			Label:   it.Label,
			CanUp:   l.CanMove(i, reorder.Up),
			CanDown: l.CanMove(i, reorder.Down),
		}
	}
	return rows
}

// ReorderMove is a parsed move request.
type ReorderMove struct {
	Order []string
	Index int
	Dir   reorder.Direction
}

// ParseReorderMove reads "order", "index" and "dir" from a parsed form.
// ok is false when index or dir is malformed.
func ParseReorderMove(r *http.Request) (m ReorderMove, ok bool) {
	m.Order = ParseReorderOrder(r)
	idx, err := strconv.Atoi(r.FormValue("index"))
	if err != nil || idx < 0 {
		return m, false
	}
	dir, ok := reorder.ParseDirection(r.FormValue("dir"))
	if !ok {
		return m, false
	}
	m.Index, m.Dir = idx, dir
	return m, true
}

// ParseReorderOrder returns the non-empty "order" values in form order.
func ParseReorderOrder(r *http.Request) []string {
	var out []string
	for _, v := range r.Form["order"] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
