// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Genders accepted on member records.
const (
	GenderMale   = "L"
	GenderFemale = "P"
)

// Member is a student serving in a division during a period.
type Member struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	FullName    string              `bson:"full_name" json:"full_name"`
	FullNameCI  string              `bson:"full_name_ci" json:"-"`
	Gender      string              `bson:"gender" json:"gender"`
	PeriodID    primitive.ObjectID  `bson:"period_id" json:"period_id"`
	DivisionID  primitive.ObjectID  `bson:"division_id" json:"division_id"`
	PositionID  *primitive.ObjectID `bson:"position_id,omitempty" json:"position_id,omitempty"`
	SubPosition string              `bson:"sub_position,omitempty" json:"sub_position,omitempty"`
	ClassName   string              `bson:"class_name,omitempty" json:"class_name,omitempty"`
	Instagram   string              `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Quote       string              `bson:"quote,omitempty" json:"quote,omitempty"`
	PhotoURL    string              `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PhotoPath   string              `bson:"photo_path,omitempty" json:"-"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
