// internal/app/store/positions/positionstore.go
package positionstore

import (
	"context"
	"errors"
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
	c       *mongo.Collection
	members *mongo.Collection
}

var (
	ErrDuplicatePosition = errors.New("a position with this name already exists")
	ErrInUse             = errors.New("position is still assigned to members")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("positions"), members: db.Collection("members")}
}

func (s *Store) Create(ctx context.Context, p models.Position) (models.Position, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Position{}, ErrDuplicatePosition
		}
		return models.Position{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Position, error) {
	var p models.Position
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Position{}, err
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Position) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       p.Name,
		"name_ci":    text.Fold(p.Name),
		"kind":       p.Kind,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicatePosition
		}
		return err
	}
	return nil
}

// Delete removes a catalog entry. It refuses with ErrInUse while any member
// holds the position.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := s.members.CountDocuments(ctx, bson.M{"position_id": id}, options.Count().SetLimit(1))
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

// List returns the whole catalog, core positions first, then by name.
func (s *Store) List(ctx context.Context) ([]models.Position, error) {
	return s.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "kind", Value: -1}, {Key: "name_ci", Value: 1}}))
}

// Find returns positions matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Position, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Position
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of positions matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
