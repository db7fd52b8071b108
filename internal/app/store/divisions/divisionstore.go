// internal/app/store/divisions/divisionstore.go
package divisionstore

import (
	"context"
	"errors"
	"sort"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/osishub/osishub/internal/app/system/reorder"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c        *mongo.Collection
	members  *mongo.Collection
	programs *mongo.Collection
}

var (
	ErrDuplicateDivision = errors.New("a division with this name already exists in the period")
	ErrInUse             = errors.New("division still has members or programs")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("divisions"),
		members:  db.Collection("members"),
		programs: db.Collection("programs"),
	}
}

// Create inserts d. A zero Rank places it after the period's last division.
func (s *Store) Create(ctx context.Context, d models.Division) (models.Division, error) {
	if d.Rank == 0 {
		next, err := s.nextRank(ctx, d.PeriodID)
		if err != nil {
			return models.Division{}, err
		}
		d.Rank = next
	}
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.NameCI = text.Fold(d.Name)
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Division{}, ErrDuplicateDivision
		}
		return models.Division{}, err
	}
	return d, nil
}

func (s *Store) nextRank(ctx context.Context, periodID primitive.ObjectID) (int, error) {
	var last models.Division
	opts := options.FindOne().SetSort(bson.D{{Key: "rank", Value: -1}}).SetProjection(bson.M{"rank": 1})
	err := s.c.FindOne(ctx, bson.M{"period_id": periodID, "rank": bson.M{"$lt": reorder.FallbackRank}}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Rank + 1, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Division, error) {
	var d models.Division
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Division{}, err
	}
	return d, nil
}

// Update replaces the editable fields. The period and rank are not changed here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, d models.Division) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":        d.Name,
		"name_ci":     text.Fold(d.Name),
		"description": d.Description,
		"type":        d.Type,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateDivision
		}
		return err
	}
	return nil
}

// SetLogo stores the logo location; empty values clear it.
func (s *Store) SetLogo(ctx context.Context, id primitive.ObjectID, url, path string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"logo_url":   url,
		"logo_path":  path,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetRank writes one division's rank. It satisfies reorder.RankWriter.
func (s *Store) SetRank(ctx context.Context, id string, rank int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := s.c.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"rank": rank, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a division by ID. It refuses with ErrInUse while members
// or programs reference it.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	one := options.Count().SetLimit(1)
	for _, c := range []*mongo.Collection{s.members, s.programs} {
		n, err := c.CountDocuments(ctx, bson.M{"division_id": id}, one)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, ErrInUse
		}
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByPeriod returns the period's divisions in display order. Unranked
// divisions come last; ties keep name order.
func (s *Store) ListByPeriod(ctx context.Context, periodID primitive.ObjectID) ([]models.Division, error) {
	out, err := s.Find(ctx, bson.M{"period_id": periodID}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	SortByRank(out)
	return out, nil
}

// SortByRank orders divisions by rank, treating zero as reorder.FallbackRank.
func SortByRank(ds []models.Division) {
	rank := func(d models.Division) int {
		if d.Rank <= 0 {
			return reorder.FallbackRank
		}
		return d.Rank
	}
	sort.SliceStable(ds, func(i, j int) bool { return rank(ds[i]) < rank(ds[j]) })
}

// Find returns divisions matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Division, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Division
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of divisions matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
