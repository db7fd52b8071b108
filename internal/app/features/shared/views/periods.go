// internal/app/features/shared/views/periods.go
package shared

import "github.com/osishub/osishub/internal/domain/models"

// PeriodOption is one entry of a period select.
type PeriodOption struct {
	ID       string
	Label    string
	Selected bool
}

// PeriodOptions lists ps for a select, marking the active period.
func PeriodOptions(ps []models.Period, selected string) []PeriodOption {
	out := make([]PeriodOption, len(ps))
	for i, p := range ps {
		id := p.ID.Hex()
		label := p.Label()
		if p.IsActive {
			label += " (aktif)"
		}
		out[i] = PeriodOption{ID: id, Label: label, Selected: id == selected}
	}
	return out
}

// PeriodPicker feeds the "period_picker" partial, a GET form that reloads
// Path with ?period=.
type PeriodPicker struct {
	Path    string
	Options []PeriodOption
	// Keep holds extra query values to carry along, e.g. a status filter.
	Keep map[string]string
}

// NewPeriodPicker builds a picker for path.
func NewPeriodPicker(path string, ps []models.Period, selected string) PeriodPicker {
	return PeriodPicker{Path: path, Options: PeriodOptions(ps, selected)}
}
