// internal/app/features/shared/views/fields.go
package shared

import (
	"html/template"
	"net/url"

	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/app/system/paging"
)

// SelectField feeds the "cascade_select" partial.
type SelectField struct {
	Level       cascade.LevelState
	Field       string
	Label       string
	Placeholder string
	// Refresh, when set, is the URL the select re-fetches the chain from on
	// change (hx-get); Target is the element swapped with the response.
	Refresh string
	Target  string
}

// NewSelectField looks up level name in st. A missing level renders as an
// empty locked select.
func NewSelectField(st cascade.State, name, field, label, placeholder string) SelectField {
	lvl, ok := st.Level(name)
	if !ok {
		lvl = cascade.LevelState{Name: name, Locked: true}
	}
	return SelectField{Level: lvl, Field: field, Label: label, Placeholder: placeholder}
}

// Refreshing makes the select re-resolve the chain when it changes.
func (f SelectField) Refreshing(url, target string) SelectField {
	f.Refresh, f.Target = url, target
	return f
}

// Pager feeds the "pager" partial.
type Pager struct {
	Range     paging.Range
	BaseQuery template.URL
}

// NewPager keeps the list filters in the pager links. keep holds the query
// values to carry; empty values are dropped. The encoded query is marked
// as a URL so html/template keeps its separators.
func NewPager(rng paging.Range, keep url.Values) Pager {
	q := url.Values{}
	for k, vs := range keep {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	base := q.Encode()
	if base != "" {
		base += "&"
	}
	return Pager{Range: rng, BaseQuery: template.URL(base)}
}
