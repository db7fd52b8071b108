package audit_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_LogAndRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx := context.Background()

	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	events := []audit.Event{
		{Timestamp: base, Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true},
		{Timestamp: base.Add(time.Minute), Category: audit.CategoryAdmin, EventType: audit.EventPeriodActivated, Success: true},
		{Timestamp: base.Add(2 * time.Minute), Category: audit.CategoryAdmin, EventType: audit.EventMemberDeleted, Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := store.Recent(ctx, audit.CategoryAdmin, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d admin events, want 2", len(got))
	}
	if got[0].EventType != audit.EventMemberDeleted {
		t.Errorf("newest first: got %q", got[0].EventType)
	}
	if got[0].ID.IsZero() {
		t.Error("Log should assign an ID")
	}

	all, err := store.Recent(ctx, "", 2)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("limit ignored: got %d events", len(all))
	}
}

func TestStore_QueryByUserAndSince(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx := context.Background()

	uid := primitive.NewObjectID()
	old := time.Now().UTC().Add(-48 * time.Hour)
	_ = store.Log(ctx, audit.Event{Timestamp: old, Category: audit.CategoryAuth, EventType: audit.EventLogout, UserID: &uid})
	_ = store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &uid})
	_ = store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess})

	since := time.Now().UTC().Add(-time.Hour)
	got, err := store.Query(ctx, audit.QueryFilter{UserID: &uid, Since: &since})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].EventType != audit.EventLoginSuccess {
		t.Fatalf("got %+v, want the one recent login of uid", got)
	}
}

func TestStore_CountAndSkip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_ = store.Log(ctx, audit.Event{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Category:  audit.CategoryAdmin,
			EventType: audit.EventProgramDeleted,
			Details:   map[string]string{"n": strconv.Itoa(i)},
		})
	}

	until := base.Add(3 * time.Hour)
	f := audit.QueryFilter{Category: audit.CategoryAdmin, Until: &until, Limit: 2, Skip: 1}
	total, err := store.CountByFilter(ctx, f)
	if err != nil {
		t.Fatalf("CountByFilter: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	got, err := store.Query(ctx, f)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 || got[0].Details["n"] != "2" || got[1].Details["n"] != "1" {
		t.Errorf("page = %+v", got)
	}
}
