// internal/app/features/members/options.go
package members

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/app/system/timeouts"
)

// optionsLevel is the JSON shape of one resolved level.
type optionsLevel struct {
	Name     string           `json:"name"`
	Options  []cascade.Option `json:"options"`
	Selected string           `json:"selected"`
	Cleared  bool             `json:"cleared"`
	Disabled bool             `json:"disabled"`
	Empty    bool             `json:"empty"`
}

// ServeOptions re-resolves the Period → Division → Position chain for the
// current selections. Browsers using HTMX get the "member_cascade" fragment;
// clients asking for JSON (Accept or ?format=json) get the levels.
//
// Route: GET /members/options?period_id=&division_id=&position_id=
func (h *Handler) ServeOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	chain, err := h.memberChain(ctx)
	if err != nil {
		h.ErrLog.HTMXLogServerError(w, r, "load member chain failed", err, "Pilihan tidak dapat dimuat.", "/members")
		return
	}
	st := chain.Resolve(selections(r))

	if wantsJSON(r) {
		writeLevels(w, st)
		return
	}
	templates.Render(w, r, "member_cascade", newCascadeFields(st))
}

func wantsJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "json" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeLevels(w http.ResponseWriter, st cascade.State) {
	out := make([]optionsLevel, len(st.Levels))
	for i, l := range st.Levels {
		out[i] = optionsLevel{
			Name:     l.Name,
			Options:  l.Options,
			Selected: l.Selected,
			Cleared:  l.Cleared,
			Disabled: l.Disabled(),
			Empty:    l.Empty,
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(map[string]any{"levels": out})
}
