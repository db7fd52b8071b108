// internal/app/store/contents/contentstore.go
package contentstore

import (
	"context"
	"sort"
	"time"

	"github.com/osishub/osishub/internal/app/system/reorder"
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
	return &Store{c: db.Collection("page_contents")}
}

// Create inserts c. A zero Rank places it after the page's last block.
func (s *Store) Create(ctx context.Context, c models.PageContent) (models.PageContent, error) {
	if c.Rank == 0 {
		var last models.PageContent
		opts := options.FindOne().SetSort(bson.D{{Key: "rank", Value: -1}}).SetProjection(bson.M{"rank": 1})
		err := s.c.FindOne(ctx, bson.M{"page": c.Page, "rank": bson.M{"$lt": reorder.FallbackRank}}, opts).Decode(&last)
		switch {
		case err == mongo.ErrNoDocuments:
			c.Rank = 1
		case err != nil:
			return models.PageContent{}, err
		default:
			c.Rank = last.Rank + 1
		}
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.PageContent{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PageContent, error) {
	var c models.PageContent
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.PageContent{}, err
	}
	return c, nil
}

// Update replaces title and body. Page and rank are not changed here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, c models.PageContent) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      c.Title,
		"body":       c.Body,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetImage stores the image location; empty values clear it.
func (s *Store) SetImage(ctx context.Context, id primitive.ObjectID, url, path string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"image_url":  url,
		"image_path": path,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetRank writes one block's rank. It satisfies reorder.RankWriter.
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

// Delete removes a block by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByPage returns a page's blocks in display order, unranked last.
func (s *Store) ListByPage(ctx context.Context, page string) ([]models.PageContent, error) {
	cur, err := s.c.Find(ctx, bson.M{"page": page}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PageContent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	rank := func(c models.PageContent) int {
		if c.Rank <= 0 {
			return reorder.FallbackRank
		}
		return c.Rank
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out, nil
}

// CountByPage returns the number of blocks per page key.
func (s *Store) CountByPage(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(models.Pages))
	for _, p := range models.Pages {
		n, err := s.c.CountDocuments(ctx, bson.M{"page": p.Key})
		if err != nil {
			return nil, err
		}
		out[p.Key] = n
	}
	return out, nil
}
