// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's index set is reconciled
idempotently; problems are aggregated so startup can fail with the full list.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, set := range indexSets() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func uniq(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true).SetName(name)}
}

func indexSets() []indexSet {
	return []indexSet{
		{"users", []mongo.IndexModel{
			uniq("uniq_users_loginidci", bson.D{{Key: "login_id_ci", Value: 1}}),
			idx("idx_users_role_status_fullnameci", bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}, {Key: "full_name_ci", Value: 1}}),
		}},
		{"periods", []mongo.IndexModel{
			uniq("uniq_periods_nameci_years", bson.D{{Key: "name_ci", Value: 1}, {Key: "start_year", Value: 1}, {Key: "end_year", Value: 1}}),
			// at most one active period is expected; lookups hit this
			idx("idx_periods_active", bson.D{{Key: "is_active", Value: 1}}),
			idx("idx_periods_startyear_desc", bson.D{{Key: "start_year", Value: -1}, {Key: "_id", Value: 1}}),
		}},
		{"divisions", []mongo.IndexModel{
			uniq("uniq_divisions_period_nameci", bson.D{{Key: "period_id", Value: 1}, {Key: "name_ci", Value: 1}}),
			idx("idx_divisions_period_rank", bson.D{{Key: "period_id", Value: 1}, {Key: "rank", Value: 1}, {Key: "_id", Value: 1}}),
		}},
		{"positions", []mongo.IndexModel{
			uniq("uniq_positions_nameci", bson.D{{Key: "name_ci", Value: 1}}),
			idx("idx_positions_kind_nameci", bson.D{{Key: "kind", Value: 1}, {Key: "name_ci", Value: 1}}),
		}},
		{"members", []mongo.IndexModel{
			idx("idx_members_period_division_fullnameci", bson.D{{Key: "period_id", Value: 1}, {Key: "division_id", Value: 1}, {Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}),
			idx("idx_members_period_fullnameci", bson.D{{Key: "period_id", Value: 1}, {Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}),
			idx("idx_members_division", bson.D{{Key: "division_id", Value: 1}}),
			// position delete checks for references
			idx("idx_members_position", bson.D{{Key: "position_id", Value: 1}}),
		}},
		{"programs", []mongo.IndexModel{
			idx("idx_programs_period_status_date", bson.D{{Key: "period_id", Value: 1}, {Key: "status", Value: 1}, {Key: "date", Value: -1}, {Key: "_id", Value: 1}}),
			idx("idx_programs_period_date", bson.D{{Key: "period_id", Value: 1}, {Key: "date", Value: -1}, {Key: "_id", Value: 1}}),
			idx("idx_programs_division", bson.D{{Key: "division_id", Value: 1}}),
			idx("idx_programs_responsible", bson.D{{Key: "responsible_id", Value: 1}}),
		}},
		{"page_contents", []mongo.IndexModel{
			idx("idx_pagecontents_page_rank", bson.D{{Key: "page", Value: 1}, {Key: "rank", Value: 1}, {Key: "_id", Value: 1}}),
		}},
		{"audit_events", []mongo.IndexModel{
			idx("idx_audit_timestamp_desc", bson.D{{Key: "timestamp", Value: -1}}),
			idx("idx_audit_category_type_timestamp", bson.D{{Key: "category", Value: 1}, {Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}}),
			idx("idx_audit_user_timestamp", bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}),
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

// listIndexes maps key signature to the existing index.
func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(ix.Key)] = ix
	}
	return existing
}

// recreate drops old and creates m in its place.
func recreate(ctx context.Context, coll *mongo.Collection, old string, m mongo.IndexModel) error {
	if _, err := coll.Indexes().DropOne(ctx, old); err != nil {
		return fmt.Errorf("drop %s: %w", old, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		if isDuplicateKeyErr(err) {
			return fmt.Errorf("cannot create unique index (duplicates present): %w", err)
		}
		return err
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
		}

		start := time.Now()
		zap.L().Info("ensuring index", fields...)

		existing := listIndexes(ctx, coll)
		ex, found := existing[desiredSig]
		if !found {
			created, err := coll.Indexes().CreateOne(ctx, m)
			if err == nil {
				zap.L().Info("index ensured", append(fields,
					zap.String("created_name", created),
					zap.String("took", time.Since(start).String()))...)
				continue
			}
			if !isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}
			// Same keys under another name appeared between list and create.
			ex, found = listIndexes(ctx, coll)[desiredSig]
			if !found {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}
		}

		switch {
		case sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName):
			zap.L().Info("reusing existing index", append(fields,
				zap.String("existing_name", ex.Name),
				zap.String("took", time.Since(start).String()))...)
		default:
			// Name or uniqueness differs: drop and recreate with the desired options.
			if err := recreate(ctx, coll, ex.Name, m); err != nil {
				zap.L().Warn("index recreate failed", append(fields, zap.String("from", ex.Name), zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}
			zap.L().Info("index dropped and recreated", append(fields,
				zap.String("from", ex.Name),
				zap.String("took", time.Since(start).String()))...)
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
