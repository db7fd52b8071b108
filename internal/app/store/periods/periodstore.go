// internal/app/store/periods/periodstore.go
package periodstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c         *mongo.Collection
	divisions *mongo.Collection
}

var (
	ErrDuplicatePeriod = errors.New("a period with this cabinet name and years already exists")
	ErrInUse           = errors.New("period still has divisions")
	ErrActive          = errors.New("the active period cannot be deleted")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("periods"), divisions: db.Collection("divisions")}
}

// Create inserts a new period. IsActive is honored only through Activate;
// new periods are always stored inactive.
func (s *Store) Create(ctx context.Context, p models.Period) (models.Period, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.CabinetName)
	p.IsActive = false
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Period{}, ErrDuplicatePeriod
		}
		return models.Period{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Period, error) {
	var p models.Period
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Period{}, err
	}
	return p, nil
}

// Update replaces the editable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Period) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"cabinet_name": p.CabinetName,
		"name_ci":      text.Fold(p.CabinetName),
		"start_year":   p.StartYear,
		"end_year":     p.EndYear,
		"motto":        p.Motto,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicatePeriod
		}
		return err
	}
	return nil
}

// Delete removes a period by ID. Returns the number of documents deleted (0 or 1).
// It refuses with ErrActive for the active period and ErrInUse while
// divisions still belong to it.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	p, err := s.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if p.IsActive {
		return 0, ErrActive
	}
	n, err := s.divisions.CountDocuments(ctx, bson.M{"period_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrInUse
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Activate makes id the only active period. Other periods are deactivated
// first and the target is activated in a second write; the two are not
// atomic. If the second write fails no period is active until retried.
func (s *Store) Activate(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	if _, err := s.c.UpdateMany(ctx,
		bson.M{"is_active": true, "_id": bson.M{"$ne": id}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	); err != nil {
		return fmt.Errorf("deactivate periods: %w", err)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_active": true, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("activate period: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Active returns the active period. When more than one is flagged active
// (an interrupted activation), the most recently updated wins.
func (s *Store) Active(ctx context.Context) (models.Period, error) {
	var p models.Period
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if err := s.c.FindOne(ctx, bson.M{"is_active": true}, opts).Decode(&p); err != nil {
		return models.Period{}, err
	}
	return p, nil
}

// List returns every period, newest first.
func (s *Store) List(ctx context.Context) ([]models.Period, error) {
	return s.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_year", Value: -1}, {Key: "_id", Value: 1}}))
}

// Find returns periods matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Period, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Period
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of periods matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Pick chooses the period a scoped admin page works on: the one named by
// idHex, else the active period, else the newest. ok is false when ps is
// empty.
func Pick(ps []models.Period, idHex string) (p models.Period, ok bool) {
	if len(ps) == 0 {
		return models.Period{}, false
	}
	if idHex != "" {
		for _, p := range ps {
			if p.ID.Hex() == idHex {
				return p, true
			}
		}
	}
	for _, p := range ps {
		if p.IsActive {
			return p, true
		}
	}
	return ps[0], true
}
