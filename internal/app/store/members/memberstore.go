// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c        *mongo.Collection
	programs *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members"), programs: db.Collection("programs")}
}

func prepare(m *models.Member, now time.Time) {
	m.ID = primitive.NewObjectID()
	m.FullNameCI = text.Fold(m.FullName)
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	prepare(&m, time.Now().UTC())
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// CreateMany inserts members in order and returns how many were stored.
// Insertion stops at the first failure.
func (s *Store) CreateMany(ctx context.Context, ms []models.Member) (int, error) {
	if len(ms) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]any, len(ms))
	for i := range ms {
		prepare(&ms[i], now)
		docs[i] = ms[i]
	}
	res, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		n := 0
		if res != nil {
			n = len(res.InsertedIDs)
		}
		return n, fmt.Errorf("insert members: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// Update replaces the editable fields. A nil PositionID removes the position.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Member) error {
	set := bson.M{
		"full_name":    m.FullName,
		"full_name_ci": text.Fold(m.FullName),
		"gender":       m.Gender,
		"period_id":    m.PeriodID,
		"division_id":  m.DivisionID,
		"sub_position": m.SubPosition,
		"class_name":   m.ClassName,
		"instagram":    m.Instagram,
		"quote":        m.Quote,
		"updated_at":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if m.PositionID != nil {
		set["position_id"] = *m.PositionID
	} else {
		update["$unset"] = bson.M{"position_id": ""}
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// SetPhoto stores the photo location; empty values clear it.
func (s *Store) SetPhoto(ctx context.Context, id primitive.ObjectID, url, path string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"photo_url":  url,
		"photo_path": path,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete removes a member and clears it as responsible person on programs.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount > 0 {
		if _, err := s.programs.UpdateMany(ctx,
			bson.M{"responsible_id": id},
			bson.M{"$unset": bson.M{"responsible_id": ""}, "$set": bson.M{"updated_at": time.Now().UTC()}},
		); err != nil {
			return res.DeletedCount, fmt.Errorf("clear program responsible: %w", err)
		}
	}
	return res.DeletedCount, nil
}

// ListByPeriod returns the period's members by name.
func (s *Store) ListByPeriod(ctx context.Context, periodID primitive.ObjectID) ([]models.Member, error) {
	return s.Find(ctx, bson.M{"period_id": periodID}, options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}))
}

// Find returns members matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Member, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Member
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of members matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
