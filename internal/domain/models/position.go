// internal/domain/models/position.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Position kinds. Core positions (Ketua, Sekretaris, ...) are only valid in a
// core division; division positions (Koordinator, Anggota, ...) in the rest.
const (
	PositionKindCore     = "Inti"
	PositionKindDivision = "Divisi"
)

// PositionKinds is the canonical list used by forms and schema validators.
var PositionKinds = []string{PositionKindCore, PositionKindDivision}

// Position is an entry of the global position catalog ("master jabatan").
type Position struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"-"`
	Kind      string             `bson:"kind" json:"kind"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// PositionKindFor returns the position kind that is valid inside a division
// of the given type.
func PositionKindFor(divisionType string) string {
	if divisionType == DivisionTypeCore {
		return PositionKindCore
	}
	return PositionKindDivision
}
