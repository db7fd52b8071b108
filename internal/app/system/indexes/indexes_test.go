package indexes_test

import (
	"testing"

	"github.com/osishub/osishub/internal/app/system/indexes"
	"github.com/osishub/osishub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var ix bson.M
		if err := cur.Decode(&ix); err != nil {
			continue
		}
		if name, ok := ix["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	want := map[string][]string{
		"users":         {"uniq_users_loginidci", "idx_users_role_status_fullnameci"},
		"periods":       {"uniq_periods_nameci_years", "idx_periods_active", "idx_periods_startyear_desc"},
		"divisions":     {"uniq_divisions_period_nameci", "idx_divisions_period_rank"},
		"positions":     {"uniq_positions_nameci", "idx_positions_kind_nameci"},
		"members":       {"idx_members_period_division_fullnameci", "idx_members_period_fullnameci", "idx_members_division", "idx_members_position"},
		"programs":      {"idx_programs_period_status_date", "idx_programs_period_date", "idx_programs_division", "idx_programs_responsible"},
		"page_contents": {"idx_pagecontents_page_rank"},
		"audit_events":  {"idx_audit_timestamp_desc", "idx_audit_category_type_timestamp", "idx_audit_user_timestamp"},
	}
	for coll, names := range want {
		got := indexNames(t, db, coll)
		for _, n := range names {
			if !got[n] {
				t.Errorf("%s: missing index %s", coll, n)
			}
		}
	}
}

func TestEnsureAll_RenamesIndexWithSameKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("page_contents").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "page", Value: 1}, {Key: "rank", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("old_name"),
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	got := indexNames(t, db, "page_contents")
	if got["old_name"] || !got["idx_pagecontents_page_rank"] {
		t.Errorf("expected old_name replaced by idx_pagecontents_page_rank, got %v", got)
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	periodID := primitive.NewObjectID()
	doc := bson.M{"period_id": periodID, "name_ci": "humas", "name": "Humas"}
	if _, err := db.Collection("divisions").InsertOne(ctx, doc); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := db.Collection("divisions").InsertOne(ctx, bson.M{"period_id": periodID, "name_ci": "humas", "name": "HUMAS"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}

	// Same name in another period is fine.
	if _, err := db.Collection("divisions").InsertOne(ctx, bson.M{"period_id": primitive.NewObjectID(), "name_ci": "humas", "name": "Humas"}); err != nil {
		t.Errorf("insert in other period: %v", err)
	}
}
