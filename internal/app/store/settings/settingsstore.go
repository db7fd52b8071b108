// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"time"

	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// docID is the _id of the one settings document.
const docID = "site"

// Store provides access to the site_settings collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_settings")}
}

// Get returns the site settings. Before the first save it returns defaults
// named fallbackName.
func (s *Store) Get(ctx context.Context, fallbackName string) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := s.c.FindOne(ctx, bson.M{"_id": docID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if fallbackName == "" {
			fallbackName = models.DefaultSiteName
		}
		return models.SiteSettings{ID: docID, SiteName: fallbackName}, nil
	}
	if err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

// Exists reports whether settings have been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": docID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Save upserts the profile text fields. Logo fields are left alone; use
// SetLogo for those.
func (s *Store) Save(ctx context.Context, settings models.SiteSettings) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"site_name":       settings.SiteName,
			"school_name":     settings.SchoolName,
			"instagram":       settings.Instagram,
			"footer_md":       settings.FooterMD,
			"updated_at":      now,
			"updated_by_name": settings.UpdatedByName,
		},
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": docID}, update, options.Update().SetUpsert(true))
	return err
}

// SetLogo records a new logo (empty values clear it).
func (s *Store) SetLogo(ctx context.Context, url, path string) error {
	update := bson.M{"$set": bson.M{
		"logo_url":   url,
		"logo_path":  path,
		"updated_at": time.Now().UTC(),
	}}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": docID}, update, options.Update().SetUpsert(true))
	return err
}
