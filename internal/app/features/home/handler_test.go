package home

import (
	"net/http/httptest"
	"testing"

	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/osishub/osishub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestLoadHome_HeroIsRankOne(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreatePeriod(ctx, "Kabinet Cakrawala", 2025, true)
	fx.CreateContent(ctx, models.PageHome, "Kedua", 2)
	fx.CreateContent(ctx, models.PageHome, "Pahlawan", 1)
	fx.CreateContent(ctx, models.PageVisiMisi, "Visi", 1)

	v, err := h.loadHome(ctx)
	if err != nil {
		t.Fatalf("loadHome: %v", err)
	}
	if v.Period == nil || v.Period.CabinetName != "Kabinet Cakrawala" {
		t.Fatalf("period = %+v", v.Period)
	}
	if v.Hero == nil || v.Hero.Title != "Pahlawan" {
		t.Fatalf("hero = %+v", v.Hero)
	}
	if len(v.Blocks) != 1 || v.Blocks[0].Title != "Kedua" {
		t.Errorf("blocks = %+v", v.Blocks)
	}
}

func TestLoadHome_NoActivePeriod(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreatePeriod(ctx, "Kabinet Lama", 2020, false)

	v, err := h.loadHome(ctx)
	if err != nil {
		t.Fatalf("loadHome: %v", err)
	}
	if v.Period != nil || v.Hero != nil || len(v.Programs) != 0 {
		t.Errorf("expected an empty landing, got %+v", v)
	}
}

func TestLoadStructure_RankOrderAndPositionsFirst(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Kabinet Cakrawala", 2025, true)
	other := fx.CreatePeriod(ctx, "Kabinet Lama", 2020, false)
	humas := fx.CreateDivision(ctx, p.ID, "Humas", models.DivisionTypeGeneral, 2)
	bph := fx.CreateDivision(ctx, p.ID, "BPH", models.DivisionTypeCore, 1)
	fx.CreateDivision(ctx, other.ID, "Arsip", models.DivisionTypeGeneral, 1)

	ketua := fx.CreatePosition(ctx, "Ketua", models.PositionKindCore)
	koor := fx.CreatePosition(ctx, "Koordinator", models.PositionKindDivision)

	fx.CreateMember(ctx, "Andi", humas, nil)
	fx.CreateMember(ctx, "Zaki", humas, &koor.ID)
	fx.CreateMember(ctx, "Budi", bph, &ketua.ID)

	v, err := h.loadStructure(ctx)
	if err != nil {
		t.Fatalf("loadStructure: %v", err)
	}
	if len(v.Divisions) != 2 {
		t.Fatalf("got %d divisions, want 2", len(v.Divisions))
	}
	if v.Divisions[0].Name != "BPH" || v.Divisions[1].Name != "Humas" {
		t.Errorf("order = %s, %s", v.Divisions[0].Name, v.Divisions[1].Name)
	}
	hm := v.Divisions[1].Members
	if len(hm) != 2 || hm[0].FullName != "Zaki" || hm[0].Position != "Koordinator" {
		t.Errorf("humas members = %+v", hm)
	}
}

func TestLoadPrograms_StatusFilterAndLabels(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Kabinet Cakrawala", 2025, true)
	d := fx.CreateDivision(ctx, p.ID, "Olahraga", models.DivisionTypeGeneral, 1)
	fx.CreateProgram(ctx, "Class Meeting", models.ProgramRunning, p.ID, &d.ID)
	fx.CreateProgram(ctx, "MPLS", models.ProgramDone, p.ID, nil)

	v, err := h.loadPrograms(ctx, models.ProgramDone)
	if err != nil {
		t.Fatalf("loadPrograms: %v", err)
	}
	if len(v.Programs) != 1 || v.Programs[0].Title != "MPLS" || v.Programs[0].Division != "Umum" {
		t.Errorf("programs = %+v", v.Programs)
	}

	v, err = h.loadPrograms(ctx, "bogus")
	if err != nil {
		t.Fatalf("loadPrograms: %v", err)
	}
	if v.Status != "" || len(v.Programs) != 2 {
		t.Errorf("unknown status should show all: status=%q n=%d", v.Status, len(v.Programs))
	}
}

func TestServeRoot_RendersWithoutTemplates(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))
	}()
	if rec.Code >= 500 {
		t.Errorf("unexpected server error: %d", rec.Code)
	}
}
