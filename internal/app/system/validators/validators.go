// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("periods", periodsSchema())
	ensure("divisions", divisionsSchema())
	ensure("positions", positionsSchema())
	ensure("members", membersSchema())
	ensure("programs", programsSchema())
	ensure("page_contents", pageContentsSchema())
	ensure("audit_events", nil)
	ensure("site_settings", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enum(vals []string) bson.A {
	out := bson.A{}
	for _, v := range vals {
		out = append(out, v)
	}
	return out
}

func schema(required bson.A, props bson.M) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": props,
		},
	}
}

func usersSchema() bson.M {
	return schema(bson.A{"full_name", "login_id", "login_id_ci", "password_hash", "role", "status"}, bson.M{
		"full_name":     nonBlank,
		"login_id":      nonBlank,
		"login_id_ci":   nonBlank,
		"password_hash": nonBlank,
		"role":          bson.M{"enum": bson.A{models.RoleAdmin}},
		"status":        bson.M{"enum": bson.A{models.StatusActive, models.StatusDisabled}},
		"last_login_at": bson.M{"bsonType": "date"},
	})
}

func periodsSchema() bson.M {
	return schema(bson.A{"cabinet_name", "name_ci", "start_year", "end_year", "is_active"}, bson.M{
		"cabinet_name": nonBlank,
		"name_ci":      nonBlank,
		"start_year":   bson.M{"bsonType": bson.A{"int", "long"}},
		"end_year":     bson.M{"bsonType": bson.A{"int", "long"}},
		"motto":        bson.M{"bsonType": "string"},
		"is_active":    bson.M{"bsonType": "bool"},
	})
}

func divisionsSchema() bson.M {
	return schema(bson.A{"period_id", "name", "name_ci", "type", "rank"}, bson.M{
		"period_id":   bson.M{"bsonType": "objectId"},
		"name":        nonBlank,
		"name_ci":     nonBlank,
		"description": bson.M{"bsonType": "string"},
		"type":        bson.M{"enum": enum(models.DivisionTypes)},
		"rank":        bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
		"logo_url":    bson.M{"bsonType": "string"},
		"logo_path":   bson.M{"bsonType": "string"},
	})
}

func positionsSchema() bson.M {
	return schema(bson.A{"name", "name_ci", "kind"}, bson.M{
		"name":    nonBlank,
		"name_ci": nonBlank,
		"kind":    bson.M{"enum": enum(models.PositionKinds)},
	})
}

func membersSchema() bson.M {
	return schema(bson.A{"full_name", "full_name_ci", "gender", "period_id", "division_id"}, bson.M{
		"full_name":    nonBlank,
		"full_name_ci": nonBlank,
		"gender":       bson.M{"enum": bson.A{models.GenderMale, models.GenderFemale}},
		"period_id":    bson.M{"bsonType": "objectId"},
		"division_id":  bson.M{"bsonType": "objectId"},
		"position_id":  bson.M{"bsonType": "objectId"},
		"sub_position": bson.M{"bsonType": "string"},
		"class_name":   bson.M{"bsonType": "string"},
		"instagram":    bson.M{"bsonType": "string"},
		"quote":        bson.M{"bsonType": "string"},
		"photo_url":    bson.M{"bsonType": "string"},
		"photo_path":   bson.M{"bsonType": "string"},
	})
}

func programsSchema() bson.M {
	return schema(bson.A{"title", "title_ci", "status", "period_id"}, bson.M{
		"title":          nonBlank,
		"title_ci":       nonBlank,
		"date":           bson.M{"bsonType": "date"},
		"status":         bson.M{"enum": enum(models.ProgramStatuses)},
		"period_id":      bson.M{"bsonType": "objectId"},
		"division_id":    bson.M{"bsonType": "objectId"},
		"responsible_id": bson.M{"bsonType": "objectId"},
		"description":    bson.M{"bsonType": "string"},
		"embed_url":      bson.M{"bsonType": "string"},
	})
}

func pageContentsSchema() bson.M {
	pages := bson.A{}
	for _, p := range models.Pages {
		pages = append(pages, p.Key)
	}
	return schema(bson.A{"page", "title", "rank"}, bson.M{
		"page":       bson.M{"enum": pages},
		"title":      bson.M{"bsonType": "string"},
		"body":       bson.M{"bsonType": "string"},
		"image_url":  bson.M{"bsonType": "string"},
		"image_path": bson.M{"bsonType": "string"},
		"rank":       bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
	})
}
