// internal/domain/models/division.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Division types.
const (
	DivisionTypeCore    = "Inti" // core board (BPH)
	DivisionTypeGeneral = "Umum"
)

// DivisionTypes is the canonical list used by forms and schema validators.
var DivisionTypes = []string{DivisionTypeCore, DivisionTypeGeneral}

// Division is an organizational unit inside a period.
//
// Rank is the 1-based display order within the period. Zero means the
// division was never ranked and sorts last.
type Division struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	PeriodID    primitive.ObjectID `bson:"period_id" json:"period_id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"`
	Rank        int                `bson:"rank" json:"rank"`
	LogoURL     string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	LogoPath    string             `bson:"logo_path,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsCore reports whether the division is the core board.
func (d Division) IsCore() bool { return d.Type == DivisionTypeCore }
