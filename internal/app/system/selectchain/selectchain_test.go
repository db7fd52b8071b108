package selectchain

import (
	"testing"

	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type world struct {
	p1, p2         models.Period
	bph, humas, lo models.Division
	ketua, anggota models.Position
	ani, budi, cit models.Member
}

func newWorld() world {
	var w world
	w.p1 = models.Period{ID: primitive.NewObjectID(), CabinetName: "Cakrawala", StartYear: 2024, EndYear: 2025}
	w.p2 = models.Period{ID: primitive.NewObjectID(), CabinetName: "Nawasena", StartYear: 2025, EndYear: 2026}
	w.bph = models.Division{ID: primitive.NewObjectID(), PeriodID: w.p1.ID, Name: "BPH", Type: models.DivisionTypeCore}
	w.humas = models.Division{ID: primitive.NewObjectID(), PeriodID: w.p1.ID, Name: "Humas", Type: models.DivisionTypeGeneral}
	w.lo = models.Division{ID: primitive.NewObjectID(), PeriodID: w.p2.ID, Name: "Olahraga", Type: models.DivisionTypeGeneral}
	w.ketua = models.Position{ID: primitive.NewObjectID(), Name: "Ketua", Kind: models.PositionKindCore}
	w.anggota = models.Position{ID: primitive.NewObjectID(), Name: "Anggota", Kind: models.PositionKindDivision}
	w.ani = models.Member{ID: primitive.NewObjectID(), FullName: "Ani", PeriodID: w.p1.ID, DivisionID: w.bph.ID}
	w.budi = models.Member{ID: primitive.NewObjectID(), FullName: "Budi", PeriodID: w.p1.ID, DivisionID: w.humas.ID}
	w.cit = models.Member{ID: primitive.NewObjectID(), FullName: "Citra", PeriodID: w.p2.ID, DivisionID: w.lo.ID}
	return w
}

func TestMember_PositionFollowsDivisionType(t *testing.T) {
	w := newWorld()
	chain := Member(
		[]models.Period{w.p1, w.p2},
		[]models.Division{w.bph, w.humas, w.lo},
		[]models.Position{w.ketua, w.anggota},
	)

	st := chain.Resolve([]string{w.p1.ID.Hex(), w.bph.ID.Hex(), w.ketua.ID.Hex()})
	if st.AnyCleared() {
		t.Fatalf("core position in core division should survive: %+v", st)
	}
	pos, _ := st.Level(LevelPosition)
	if len(pos.Options) != 1 || pos.Options[0].ID != w.ketua.ID.Hex() {
		t.Errorf("core division offers %+v, want only Ketua", pos.Options)
	}

	st = chain.Resolve([]string{w.p1.ID.Hex(), w.humas.ID.Hex(), w.ketua.ID.Hex()})
	pos, _ = st.Level(LevelPosition)
	if !pos.Cleared || pos.Selected != "" {
		t.Errorf("Ketua in a general division should be cleared, got %+v", pos)
	}

	st = chain.Resolve([]string{w.p2.ID.Hex(), w.humas.ID.Hex(), w.anggota.ID.Hex()})
	got := st.Selected()
	if got[1] != "" || got[2] != "" {
		t.Errorf("division of another period should clear down the chain, got %v", got)
	}
}

func TestProgram_GeneralDivisionOffersWholePeriod(t *testing.T) {
	w := newWorld()
	chain := Program(
		[]models.Period{w.p1, w.p2},
		[]models.Division{w.bph, w.humas, w.lo},
		[]models.Member{w.ani, w.budi, w.cit},
	)

	st := chain.Resolve([]string{w.p1.ID.Hex(), GeneralDivision, w.budi.ID.Hex()})
	if st.AnyCleared() {
		t.Fatalf("unexpected clear: %+v", st)
	}
	div, _ := st.Level(LevelDivision)
	if len(div.Options) != 3 || div.Options[0].ID != GeneralDivision {
		t.Errorf("division options = %+v, want general first then 2 divisions", div.Options)
	}
	resp, _ := st.Level(LevelResponsible)
	if len(resp.Options) != 2 {
		t.Errorf("general division should offer all members of the period, got %+v", resp.Options)
	}

	st = chain.Resolve([]string{w.p1.ID.Hex(), w.humas.ID.Hex(), w.ani.ID.Hex()})
	resp, _ = st.Level(LevelResponsible)
	if !resp.Cleared {
		t.Errorf("member of BPH should be cleared under Humas, got %+v", resp)
	}
	if len(resp.Options) != 1 || resp.Options[0].ID != w.budi.ID.Hex() {
		t.Errorf("Humas options = %+v, want Budi", resp.Options)
	}

	st = chain.Resolve([]string{w.p2.ID.Hex(), GeneralDivision, w.budi.ID.Hex()})
	resp, _ = st.Level(LevelResponsible)
	if !resp.Cleared || len(resp.Options) != 1 || resp.Options[0].ID != w.cit.ID.Hex() {
		t.Errorf("switching period should leave only Citra, got %+v", resp)
	}
}
