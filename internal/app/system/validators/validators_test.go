package validators_test

import (
	"testing"

	"github.com/osishub/osishub/internal/app/system/validators"
	"github.com/osishub/osishub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_IdempotentAndCreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "periods", "divisions", "positions", "members", "programs", "page_contents", "audit_events", "site_settings"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators_RejectAndAccept(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	periodID := primitive.NewObjectID()
	divisionID := primitive.NewObjectID()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{"division ok", "divisions", bson.M{"period_id": periodID, "name": "Humas", "name_ci": "humas", "type": "Umum", "rank": 1}, false},
		{"division bad type", "divisions", bson.M{"period_id": periodID, "name": "Humas", "name_ci": "humas", "type": "Lain", "rank": 1}, true},
		{"division blank name", "divisions", bson.M{"period_id": periodID, "name": "  ", "name_ci": "x", "type": "Umum", "rank": 1}, true},
		{"position bad kind", "positions", bson.M{"name": "Ketua", "name_ci": "ketua", "kind": "Lain"}, true},
		{"member ok", "members", bson.M{"full_name": "Ani", "full_name_ci": "ani", "gender": "P", "period_id": periodID, "division_id": divisionID}, false},
		{"member bad gender", "members", bson.M{"full_name": "Ani", "full_name_ci": "ani", "gender": "X", "period_id": periodID, "division_id": divisionID}, true},
		{"member missing division", "members", bson.M{"full_name": "Ani", "full_name_ci": "ani", "gender": "P", "period_id": periodID}, true},
		{"program bad status", "programs", bson.M{"title": "Pensi", "title_ci": "pensi", "status": "Batal", "period_id": periodID}, true},
		{"program ok", "programs", bson.M{"title": "Pensi", "title_ci": "pensi", "status": "Rencana", "period_id": periodID}, false},
		{"content bad page", "page_contents", bson.M{"page": "kontak", "title": "x", "rank": 1}, true},
		{"user bad role", "users", bson.M{"full_name": "A", "login_id": "a", "login_id_ci": "a", "password_hash": "h", "role": "member", "status": "active"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("insert err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
