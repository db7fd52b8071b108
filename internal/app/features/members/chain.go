// internal/app/features/members/chain.go
package members

import (
	"context"

	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/app/system/selectchain"
	"go.mongodb.org/mongo-driver/bson"
)

// cascadeTarget is the element the member selects swap on change.
const cascadeTarget = "#member-cascade"

// memberChain loads every period, division and catalog position into the
// Period → Division → Position chain. The lists are small and fetched per
// request; nothing is cached.
func (h *Handler) memberChain(ctx context.Context) (cascade.Chain, error) {
	ps, err := h.Periods.List(ctx)
	if err != nil {
		return cascade.Chain{}, err
	}
	ds, err := h.Divisions.Find(ctx, bson.M{})
	if err != nil {
		return cascade.Chain{}, err
	}
	pos, err := h.Positions.List(ctx)
	if err != nil {
		return cascade.Chain{}, err
	}
	return selectchain.Member(ps, ds, pos), nil
}

// cascadeFields is the view of a resolved member chain.
type cascadeFields struct {
	Period   shared.SelectField
	Division shared.SelectField
	Position shared.SelectField
}

func newCascadeFields(st cascade.State) cascadeFields {
	return cascadeFields{
		Period: shared.NewSelectField(st, selectchain.LevelPeriod, "period_id", "Periode", "Pilih periode").
			Refreshing("/members/options", cascadeTarget),
		Division: shared.NewSelectField(st, selectchain.LevelDivision, "division_id", "Divisi", "Pilih divisi").
			Refreshing("/members/options", cascadeTarget),
		Position: shared.NewSelectField(st, selectchain.LevelPosition, "position_id", "Jabatan", "Tanpa jabatan"),
	}
}
