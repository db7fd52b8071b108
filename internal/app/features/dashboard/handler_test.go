package dashboard

import (
	"testing"

	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/osishub/osishub/internal/testutil"
	"go.uber.org/zap"
)

func TestLoad_NoActivePeriod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	data, err := h.load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Period != nil {
		t.Errorf("expected no active period, got %+v", data.Period)
	}
	if len(data.ContentsByPage) != len(models.Pages) {
		t.Errorf("ContentsByPage rows = %d, want %d", len(data.ContentsByPage), len(models.Pages))
	}
}

func TestLoad_ActivePeriodCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Kabinet Cakrawala", 2025, true)
	d := fx.CreateDivision(ctx, p.ID, "Humas", models.DivisionTypeGeneral, 1)
	fx.CreateMember(ctx, "Sari", d, nil)
	fx.CreateProgram(ctx, "Pensi", models.ProgramRunning, p.ID, nil)

	data, err := h.load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Period == nil || data.Period.ID != p.ID {
		t.Fatalf("period = %+v", data.Period)
	}
	if data.Counts.Members != 1 || data.Counts.MembersFemale != 1 {
		t.Errorf("member counts = %+v", data.Counts)
	}
	if len(data.ProgramsByStatus) != len(models.ProgramStatuses) {
		t.Fatalf("status rows = %d", len(data.ProgramsByStatus))
	}
	for _, row := range data.ProgramsByStatus {
		want := int64(0)
		if row.Status == models.ProgramRunning {
			want = 1
		}
		if row.Count != want {
			t.Errorf("%s = %d, want %d", row.Status, row.Count, want)
		}
	}
}

func TestLoad_RecentActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_ = h.Audit.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true})
	_ = h.Audit.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventMemberDeleted,
		ActorName: "Bu Rina",
		Success:   true,
		Details:   map[string]string{"name": "Sari"},
	})

	data, err := h.load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Activity) != 1 {
		t.Fatalf("activity rows = %d, want 1 (admin events only)", len(data.Activity))
	}
	row := data.Activity[0]
	if row.Actor != "Bu Rina" || row.Action != "Menghapus anggota" || row.Target != "Sari" {
		t.Errorf("row = %+v", row)
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		details map[string]string
		want    string
	}{
		{map[string]string{"name": "Humas", "division_id": "x"}, "Humas"},
		{map[string]string{"page": "beranda"}, "halaman beranda"},
		{map[string]string{"period_id": "x", "count": "12"}, "12 baris"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := target(tt.details); got != tt.want {
			t.Errorf("target(%v) = %q, want %q", tt.details, got, tt.want)
		}
	}
}
