// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 25

// MaxPageSize caps the "limit" query parameter.
const MaxPageSize = 100

// Window is a skip/limit slice of a sorted result set. Start is the 1-based
// index of the first row, as carried in the "start" query parameter.
type Window struct {
	Start int
	Limit int
}

// Skip returns the number of rows to skip for the window.
func (w Window) Skip() int64 { return int64(w.Start - 1) }

// ApplyToFind sets skip and limit on find.
func (w Window) ApplyToFind(find *options.FindOptions) *options.FindOptions {
	return find.SetSkip(w.Skip()).SetLimit(int64(w.Limit))
}

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "start"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseLimit extracts the "limit" query parameter, clamped to [1, MaxPageSize].
// Returns PageSize if not present or invalid.
func ParseLimit(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "limit"))
	if err != nil || n < 1 {
		return PageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// FromRequest reads the window from the "start" and "limit" query parameters.
func FromRequest(r *http.Request) Window {
	return Window{Start: ParseStart(r), Limit: ParseLimit(r)}
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	Total     int64
	HasPrev   bool
	HasNext   bool
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
}

// ComputeRange calculates display range values for a window that returned
// shown rows out of total.
func ComputeRange(w Window, shown int, total int64) Range {
	if shown == 0 {
		return Range{Total: total, HasPrev: w.Start > 1, PrevStart: prevStart(w), NextStart: w.Start}
	}
	end := w.Start + shown - 1
	return Range{
		Start:     w.Start,
		End:       end,
		Total:     total,
		HasPrev:   w.Start > 1,
		HasNext:   int64(end) < total,
		PrevStart: prevStart(w),
		NextStart: end + 1,
	}
}

func prevStart(w Window) int {
	p := w.Start - w.Limit
	if p < 1 {
		return 1
	}
	return p
}
