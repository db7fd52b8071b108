// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page keys for content blocks.
const (
	PageHome     = "beranda"
	PageVisiMisi = "visi-misi"
	PageAbout    = "tentang"
)

// Pages lists the pages that carry editable content blocks, with display names.
var Pages = []PageInfo{
	{Key: PageHome, Name: "Beranda"},
	{Key: PageVisiMisi, Name: "Visi & Misi"},
	{Key: PageAbout, Name: "Tentang OSIS"},
}

// PageInfo names a page that owns content blocks.
type PageInfo struct {
	Key  string
	Name string
}

// IsValidPage reports whether key names a known page.
func IsValidPage(key string) bool {
	for _, p := range Pages {
		if p.Key == key {
			return true
		}
	}
	return false
}

// PageContent is an ordered content block. The block at rank 1 of the home
// page is rendered as the hero banner.
type PageContent struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Page      string             `bson:"page" json:"page"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"` // markdown
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ImagePath string             `bson:"image_path,omitempty" json:"-"`
	Rank      int                `bson:"rank" json:"rank"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
