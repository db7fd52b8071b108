// Package cascade keeps a chain of dependent select values consistent.
//
// A chain is an ordered list of levels, e.g. Period → Division → Position.
// Every level below the first is scoped by the option selected one level up:
// its filtered list contains only the options the level's Match function
// accepts for that parent. Resolve recomputes every filtered list from the
// full in-memory source lists and clears any selection that no longer belongs
// to its filtered list. A cleared selection leaves the next level without a
// parent, so the clear carries down the chain.
//
// Children are never shown unscoped: with no parent selected, a level's
// filtered list is empty.
package cascade

// Option is one selectable value.
//
// Parent holds the option's foreign key (e.g. a division's period ID). Tag
// holds a discriminator (e.g. a division's type, or a position's kind).
type Option struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Parent string `json:"-"`
	Tag    string `json:"-"`
}

// MatchFunc reports whether opt is selectable when parent is selected one
// level up. parent is never nil when called.
type MatchFunc func(parent Option, opt Option) bool

// ByParent matches options whose Parent equals the selected parent's ID.
func ByParent(parent Option, opt Option) bool {
	return opt.Parent == parent.ID
}

// ByTag matches options whose Tag equals derive(parent.Tag). Use it when the
// valid subset is chosen by a discriminator read off the parent object rather
// than by a foreign key.
func ByTag(derive func(parentTag string) string) MatchFunc {
	return func(parent Option, opt Option) bool {
		return opt.Tag == derive(parent.Tag)
	}
}

// Level is one select in the chain. Match is ignored on the first level.
type Level struct {
	Name    string
	Options []Option
	Match   MatchFunc
}

// Chain is an ordered set of dependent levels.
type Chain struct {
	Levels []Level
}

// New builds a chain from its levels, top first.
func New(levels ...Level) Chain {
	return Chain{Levels: levels}
}

// LevelState is the resolved state of one level.
type LevelState struct {
	Name    string
	Options []Option
	// Selected is the surviving selection ("" when none).
	Selected string
	// Cleared is true when a non-empty incoming selection was dropped
	// because it is not in Options.
	Cleared bool
	// Locked is true when the level has no parent selected. Locked levels
	// render disabled.
	Locked bool
	// Empty is true when a parent is selected but nothing matches it; the
	// form shows "no items available for this selection".
	Empty bool
}

// Disabled reports whether the select should render disabled.
func (s LevelState) Disabled() bool { return s.Locked || s.Empty }

// State is the resolved chain.
type State struct {
	Levels []LevelState
}

// Level returns the state for the named level and whether it exists.
func (s State) Level(name string) (LevelState, bool) {
	for _, l := range s.Levels {
		if l.Name == name {
			return l, true
		}
	}
	return LevelState{}, false
}

// Selected returns the surviving selection of every level, top first.
func (s State) Selected() []string {
	out := make([]string, len(s.Levels))
	for i, l := range s.Levels {
		out[i] = l.Selected
	}
	return out
}

// AnyCleared reports whether Resolve dropped at least one selection.
func (s State) AnyCleared() bool {
	for _, l := range s.Levels {
		if l.Cleared {
			return true
		}
	}
	return false
}

// Resolve filters every level under the current selections and clears the
// selections that fell out of their filtered list. selected is indexed like
// Levels; missing trailing entries count as unset.
func (c Chain) Resolve(selected []string) State {
	st := State{Levels: make([]LevelState, len(c.Levels))}

	var parent *Option
	for i, lvl := range c.Levels {
		want := ""
		if i < len(selected) {
			want = selected[i]
		}

		ls := LevelState{Name: lvl.Name}
		switch {
		case i == 0:
			ls.Options = append([]Option(nil), lvl.Options...)
		case parent == nil:
			ls.Options = []Option{}
			ls.Locked = true
		default:
			ls.Options = Filter(lvl.Options, *parent, lvl.Match)
			ls.Empty = len(ls.Options) == 0
		}

		parent = nil
		if want != "" {
			if opt, ok := find(ls.Options, want); ok {
				ls.Selected = want
				parent = &opt
			} else {
				ls.Cleared = true
			}
		}
		st.Levels[i] = ls
	}
	return st
}

// Filter returns the options that match under parent, preserving order.
// A nil match accepts nothing.
func Filter(options []Option, parent Option, match MatchFunc) []Option {
	out := make([]Option, 0, len(options))
	if match == nil {
		return out
	}
	for _, o := range options {
		if match(parent, o) {
			out = append(out, o)
		}
	}
	return out
}

// Contains reports whether id is one of options.
func Contains(options []Option, id string) bool {
	_, ok := find(options, id)
	return ok
}

func find(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}
