// Package selectchain builds the dependent-select chains of the member and
// program forms from stored records.
package selectchain

import (
	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/domain/models"
)

// Level names, also used as form field prefixes.
const (
	LevelPeriod      = "period"
	LevelDivision    = "division"
	LevelPosition    = "position"
	LevelResponsible = "responsible"
)

// GeneralDivision is the division-level option of the program form that
// means "the whole organization". It is stored as a nil division.
const GeneralDivision = "general"

// GeneralDivisionLabel is shown for GeneralDivision.
const GeneralDivisionLabel = "Umum (seluruh OSIS)"

// PeriodOptions converts periods, keeping their order.
func PeriodOptions(periods []models.Period) []cascade.Option {
	out := make([]cascade.Option, 0, len(periods))
	for _, p := range periods {
		out = append(out, cascade.Option{ID: p.ID.Hex(), Label: p.Label()})
	}
	return out
}

// DivisionOptions converts divisions. Parent is the period; Tag is the type.
func DivisionOptions(divisions []models.Division) []cascade.Option {
	out := make([]cascade.Option, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, cascade.Option{
			ID:     d.ID.Hex(),
			Label:  d.Name,
			Parent: d.PeriodID.Hex(),
			Tag:    d.Type,
		})
	}
	return out
}

// PositionOptions converts catalog positions. Tag is the kind.
func PositionOptions(positions []models.Position) []cascade.Option {
	out := make([]cascade.Option, 0, len(positions))
	for _, p := range positions {
		out = append(out, cascade.Option{ID: p.ID.Hex(), Label: p.Name, Tag: p.Kind})
	}
	return out
}

// MemberOptions converts members. Parent is the division; Tag is the period.
func MemberOptions(members []models.Member) []cascade.Option {
	out := make([]cascade.Option, 0, len(members))
	for _, m := range members {
		out = append(out, cascade.Option{
			ID:     m.ID.Hex(),
			Label:  m.FullName,
			Parent: m.DivisionID.Hex(),
			Tag:    m.PeriodID.Hex(),
		})
	}
	return out
}

// Member is Period → Division → Position. Positions are filtered by the
// kind that fits the selected division's type.
func Member(periods []models.Period, divisions []models.Division, positions []models.Position) cascade.Chain {
	return cascade.New(
		cascade.Level{Name: LevelPeriod, Options: PeriodOptions(periods)},
		cascade.Level{Name: LevelDivision, Options: DivisionOptions(divisions), Match: cascade.ByParent},
		cascade.Level{Name: LevelPosition, Options: PositionOptions(positions), Match: cascade.ByTag(models.PositionKindFor)},
	)
}

// Program is Period → Division → Responsible member. Every period gets a
// leading GeneralDivision option; under it any member of the period may be
// responsible.
func Program(periods []models.Period, divisions []models.Division, members []models.Member) cascade.Chain {
	divOpts := make([]cascade.Option, 0, len(periods)+len(divisions))
	for _, p := range periods {
		divOpts = append(divOpts, cascade.Option{ID: GeneralDivision, Label: GeneralDivisionLabel, Parent: p.ID.Hex()})
	}
	divOpts = append(divOpts, DivisionOptions(divisions)...)

	return cascade.New(
		cascade.Level{Name: LevelPeriod, Options: PeriodOptions(periods)},
		cascade.Level{Name: LevelDivision, Options: divOpts, Match: cascade.ByParent},
		cascade.Level{Name: LevelResponsible, Options: MemberOptions(members), Match: matchResponsible},
	)
}

func matchResponsible(parent cascade.Option, opt cascade.Option) bool {
	if parent.ID == GeneralDivision {
		return opt.Tag == parent.Parent
	}
	return opt.Parent == parent.ID
}
