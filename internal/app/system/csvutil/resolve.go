package csvutil

import (
	"fmt"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/osishub/osishub/internal/app/system/selectchain"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveMembers maps parsed rows onto the target period. Division names are
// looked up among the period's divisions and position names in the catalog;
// each row then goes through the same Period → Division → Position chain the
// member form uses, so a position whose kind does not fit the division type
// is rejected. Returned members have no ID or timestamps yet.
func ResolveMembers(rows []MemberRow, period models.Period, divisions []models.Division, positions []models.Position) ([]models.Member, []RowError) {
	chain := selectchain.Member([]models.Period{period}, divisions, positions)

	divByName := make(map[string]models.Division, len(divisions))
	for _, d := range divisions {
		if d.PeriodID == period.ID {
			divByName[text.Fold(d.Name)] = d
		}
	}
	posByName := make(map[string]models.Position, len(positions))
	for _, p := range positions {
		posByName[text.Fold(p.Name)] = p
	}

	var (
		out  []models.Member
		errs []RowError
	)
	for _, row := range rows {
		div, ok := divByName[text.Fold(row.Division)]
		if !ok {
			errs = append(errs, RowError{Line: row.Line, Reason: fmt.Sprintf("divisi %q tidak ada pada periode %s", row.Division, period.Label())})
			continue
		}

		selected := []string{period.ID.Hex(), div.ID.Hex(), ""}
		var posID *primitive.ObjectID
		if row.Position != "" {
			pos, ok := posByName[text.Fold(row.Position)]
			if !ok {
				errs = append(errs, RowError{Line: row.Line, Reason: fmt.Sprintf("jabatan %q tidak dikenal", row.Position)})
				continue
			}
			selected[2] = pos.ID.Hex()
			id := pos.ID
			posID = &id
		}

		st := chain.Resolve(selected)
		if pl, _ := st.Level(selectchain.LevelPosition); pl.Cleared {
			errs = append(errs, RowError{Line: row.Line, Reason: fmt.Sprintf("jabatan %q tidak berlaku untuk divisi %s (%s)", row.Position, div.Name, div.Type)})
			continue
		}

		out = append(out, models.Member{
			FullName:    row.FullName,
			Gender:      row.Gender,
			PeriodID:    period.ID,
			DivisionID:  div.ID,
			PositionID:  posID,
			SubPosition: row.SubPosition,
			ClassName:   row.ClassName,
			Instagram:   row.Instagram,
			Quote:       row.Quote,
		})
	}
	return out, errs
}
