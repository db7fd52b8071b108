// internal/app/features/programs/chain.go
package programs

import (
	"context"

	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/app/system/selectchain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cascadeTarget = "#program-cascade"

// programChain loads periods, divisions and members into the
// Period → Division → Responsible chain.
func (h *Handler) programChain(ctx context.Context) (cascade.Chain, error) {
	ps, err := h.Periods.List(ctx)
	if err != nil {
		return cascade.Chain{}, err
	}
	ds, err := h.Divisions.Find(ctx, bson.M{})
	if err != nil {
		return cascade.Chain{}, err
	}
	ms, err := h.Members.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		return cascade.Chain{}, err
	}
	return selectchain.Program(ps, ds, ms), nil
}

type cascadeFields struct {
	Period      shared.SelectField
	Division    shared.SelectField
	Responsible shared.SelectField
}

func newCascadeFields(st cascade.State) cascadeFields {
	return cascadeFields{
		Period: shared.NewSelectField(st, selectchain.LevelPeriod, "period_id", "Periode", "Pilih periode").
			Refreshing("/programs/options", cascadeTarget),
		Division: shared.NewSelectField(st, selectchain.LevelDivision, "division_id", "Divisi", "Pilih divisi").
			Refreshing("/programs/options", cascadeTarget),
		Responsible: shared.NewSelectField(st, selectchain.LevelResponsible, "responsible_id", "Penanggung jawab", "Belum ditentukan"),
	}
}
