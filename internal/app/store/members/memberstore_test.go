package memberstore_test

import (
	"testing"

	memberstore "github.com/osishub/osishub/internal/app/store/members"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/osishub/osishub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_CreateUpdateClearsPosition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2024, true)
	d := fx.CreateDivision(ctx, p.ID, "BPH", models.DivisionTypeCore, 1)
	pos := fx.CreatePosition(ctx, "Ketua", models.PositionKindCore)

	m, err := store.Create(ctx, models.Member{
		FullName: "Ani Lestari", Gender: models.GenderFemale,
		PeriodID: p.ID, DivisionID: d.ID, PositionID: &pos.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.FullNameCI != "ani lestari" {
		t.Errorf("FullNameCI = %q", m.FullNameCI)
	}

	m.PositionID = nil
	m.ClassName = "XII IPA 1"
	if err := store.Update(ctx, m.ID, m); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PositionID != nil {
		t.Errorf("position should be cleared, got %v", got.PositionID.Hex())
	}
	if got.ClassName != "XII IPA 1" {
		t.Errorf("ClassName = %q", got.ClassName)
	}
}

func TestStore_CreateMany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2024, true)
	d := fx.CreateDivision(ctx, p.ID, "Humas", models.DivisionTypeGeneral, 1)

	n, err := store.CreateMany(ctx, []models.Member{
		{FullName: "Budi", Gender: "L", PeriodID: p.ID, DivisionID: d.ID},
		{FullName: "Ani", Gender: "P", PeriodID: p.ID, DivisionID: d.ID},
	})
	if err != nil || n != 2 {
		t.Fatalf("CreateMany = %d, %v", n, err)
	}
	list, err := store.ListByPeriod(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByPeriod: %v", err)
	}
	if len(list) != 2 || list[0].FullName != "Ani" {
		t.Errorf("ListByPeriod = %+v", list)
	}
}

func TestStore_Delete_ClearsProgramResponsible(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2024, true)
	d := fx.CreateDivision(ctx, p.ID, "Humas", models.DivisionTypeGeneral, 1)
	m := fx.CreateMember(ctx, "Ani", d, nil)
	prog := fx.CreateProgram(ctx, "Pensi", models.ProgramPlanned, p.ID, &d.ID)
	if _, err := db.Collection("programs").UpdateByID(ctx, prog.ID, bson.M{"$set": bson.M{"responsible_id": m.ID}}); err != nil {
		t.Fatalf("set responsible: %v", err)
	}

	n, err := store.Delete(ctx, m.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}

	var got models.Program
	if err := db.Collection("programs").FindOne(ctx, bson.M{"_id": prog.ID}).Decode(&got); err != nil {
		t.Fatalf("load program: %v", err)
	}
	if got.ResponsibleID != nil {
		t.Errorf("responsible should be cleared, got %s", got.ResponsibleID.Hex())
	}
}
