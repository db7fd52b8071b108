// Package reorder holds an editable display order for ranked items and
// persists it one rank write at a time.
//
// A List is loaded from the store, moved around with Move, and written back
// with Commit, which assigns rank = position+1 to every item in list order.
// Writes are issued sequentially; the first failure stops the loop and the
// ranks already written stay written.
package reorder

import (
	"context"
	"fmt"
	"sort"
)

// FallbackRank is the sort rank used for items that were never ranked, so
// they land after every ranked item.
const FallbackRank = 9999

// Direction is the direction of a single move.
type Direction int

const (
	Up Direction = iota
	Down
)

// ParseDirection maps the form values "up" and "down" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return Up, false
}

// Item is one row of the reorder surface.
type Item struct {
	ID    string
	Label string
	Rank  int
}

func (it Item) sortRank() int {
	if it.Rank <= 0 {
		return FallbackRank
	}
	return it.Rank
}

// List is an ordered set of items.
type List struct {
	items []Item
}

// New sorts items by rank (unranked last, ties in input order).
func New(items []Item) *List {
	cp := append([]Item(nil), items...)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].sortRank() < cp[j].sortRank()
	})
	return &List{items: cp}
}

// FromIDs rebuilds a list in the order given by ids, taking labels from
// known. Unknown ids are dropped and known items missing from ids are
// appended in rank order, so a stale form never loses an item.
func FromIDs(ids []string, known []Item) *List {
	byID := make(map[string]Item, len(known))
	for _, it := range known {
		byID[it.ID] = it
	}
	seen := make(map[string]bool, len(ids))
	out := make([]Item, 0, len(known))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, it)
	}
	for _, it := range New(known).items {
		if !seen[it.ID] {
			out = append(out, it)
		}
	}
	return &List{items: out}
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the items in current order.
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

// IDs returns the item IDs in current order.
func (l *List) IDs() []string {
	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = it.ID
	}
	return out
}

// CanMove reports whether the item at index can move in dir.
func (l *List) CanMove(index int, dir Direction) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	if dir == Up {
		return index > 0
	}
	return index < len(l.items)-1
}

// Move swaps the item at index with its neighbor in dir. Moves past either
// end are no-ops. It reports whether the list changed.
func (l *List) Move(index int, dir Direction) bool {
	if !l.CanMove(index, dir) {
		return false
	}
	j := index - 1
	if dir == Down {
		j = index + 1
	}
	l.items[index], l.items[j] = l.items[j], l.items[index]
	return true
}

// RankWriter persists one item's rank.
type RankWriter interface {
	SetRank(ctx context.Context, id string, rank int) error
}

// RankWriterFunc adapts a function to RankWriter.
type RankWriterFunc func(ctx context.Context, id string, rank int) error

// SetRank calls f.
func (f RankWriterFunc) SetRank(ctx context.Context, id string, rank int) error {
	return f(ctx, id, rank)
}

// CommitError reports a commit that stopped part way.
type CommitError struct {
	Item    Item
	Rank    int
	Written int
	Err     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("reorder: set rank %d on %q failed after %d writes: %v",
		e.Rank, e.Item.Label, e.Written, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// Commit writes rank i+1 to the i-th item, for every item, in order. It
// stops at the first failed write and returns it as a *CommitError. On
// success the item ranks in the list are updated to match.
func (l *List) Commit(ctx context.Context, w RankWriter) error {
	for i, it := range l.items {
		if err := ctx.Err(); err != nil {
			return &CommitError{Item: it, Rank: i + 1, Written: i, Err: err}
		}
		if err := w.SetRank(ctx, it.ID, i+1); err != nil {
			return &CommitError{Item: it, Rank: i + 1, Written: i, Err: err}
		}
		l.items[i].Rank = i + 1
	}
	return nil
}
