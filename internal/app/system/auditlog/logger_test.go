package auditlog

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNilLogger_Discards(t *testing.T) {
	var l *Logger
	r := httptest.NewRequest("POST", "/members/x/delete", nil)
	l.Admin(context.Background(), r, audit.EventMemberDeleted, nil)
	l.Logout(context.Background(), r)
}

func TestLogger_ModesRouteEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	core, logs := observer.New(zap.InfoLevel)

	l := New(store, zap.New(core), Config{Auth: ModeLog, Admin: ModeDB})
	ctx := context.Background()

	r := testutil.AsAdmin(httptest.NewRequest("POST", "/periods/x/activate", nil))
	r.RemoteAddr = "10.0.0.7:5555"

	l.LoginSuccess(ctx, r, primitive.NewObjectID(), "admin")
	l.Admin(ctx, r, audit.EventPeriodActivated, map[string]string{"period_id": "x"})

	if logs.Len() != 1 {
		t.Fatalf("zap entries = %d, want 1 (auth only)", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["event_type"] != audit.EventLoginSuccess {
		t.Errorf("zap event_type = %v", entry.ContextMap()["event_type"])
	}

	stored, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored = %d, want 1 (admin only)", len(stored))
	}
	got := stored[0]
	if got.EventType != audit.EventPeriodActivated || got.Details["period_id"] != "x" {
		t.Errorf("stored event = %+v", got)
	}
	if got.ActorName != "Test Admin" || got.UserID == nil {
		t.Errorf("actor not recorded: %+v", got)
	}
	if got.IP != "10.0.0.7" {
		t.Errorf("IP = %q", got.IP)
	}
}

func TestLogger_OffAndFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	core, logs := observer.New(zap.InfoLevel)

	l := New(store, zap.New(core), Config{Auth: ModeAll, Admin: ModeOff})
	ctx := context.Background()
	r := httptest.NewRequest("POST", "/login", nil)

	l.Admin(ctx, r, audit.EventProgramDeleted, nil)
	l.LoginFailed(ctx, r, audit.EventLoginFailedWrongPassword, "ketua", "wrong password")

	if logs.Len() != 1 {
		t.Fatalf("zap entries = %d, want 1", logs.Len())
	}
	if logs.All()[0].Level != zap.WarnLevel {
		t.Errorf("failed login should log at warn, got %v", logs.All()[0].Level)
	}
	stored, _ := store.Recent(ctx, "", 10)
	if len(stored) != 1 || stored[0].Success || stored[0].FailureReason != "wrong password" {
		t.Errorf("stored = %+v", stored)
	}
}
