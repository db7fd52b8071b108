// internal/app/store/programs/programstore.go
package programstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("programs")}
}

func (s *Store) Create(ctx context.Context, p models.Program) (models.Program, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	if p.Status == "" {
		p.Status = models.ProgramPlanned
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Program{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Program, error) {
	var p models.Program
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Program{}, err
	}
	return p, nil
}

// Update replaces the editable fields. Nil optional references are removed.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Program) error {
	set := bson.M{
		"title":       p.Title,
		"title_ci":    text.Fold(p.Title),
		"status":      p.Status,
		"period_id":   p.PeriodID,
		"description": p.Description,
		"embed_url":   p.EmbedURL,
		"updated_at":  time.Now().UTC(),
	}
	unset := bson.M{}
	optional := func(field string, present bool, v any) {
		if present {
			set[field] = v
		} else {
			unset[field] = ""
		}
	}
	optional("date", p.Date != nil, p.Date)
	optional("division_id", p.DivisionID != nil, p.DivisionID)
	optional("responsible_id", p.ResponsibleID != nil, p.ResponsibleID)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// Delete removes a program by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Filter builds the list filter for a period and an optional status.
func Filter(periodID primitive.ObjectID, status string) bson.M {
	f := bson.M{"period_id": periodID}
	if status != "" {
		f["status"] = status
	}
	return f
}

// DefaultSort orders programs by date, newest first, undated last.
func DefaultSort() bson.D {
	return bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}
}

// Find returns programs matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Program, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Program
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of programs matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountByStatus returns per-status counts for a period.
func (s *Store) CountByStatus(ctx context.Context, periodID primitive.ObjectID) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"period_id": periodID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64, len(models.ProgramStatuses))
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			N      int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Status] = row.N
	}
	return out, cur.Err()
}
