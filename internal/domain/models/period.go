// internal/domain/models/period.go
package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Period is a cabinet term ("kabinet"). Divisions and members are scoped to it.
type Period struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	CabinetName string             `bson:"cabinet_name" json:"cabinet_name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	StartYear   int                `bson:"start_year" json:"start_year"`
	EndYear     int                `bson:"end_year" json:"end_year"`
	Motto       string             `bson:"motto" json:"motto"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Label is the human-friendly name shown in selects, e.g. "Kabinet Cakrawala (2024/2025)".
func (p Period) Label() string {
	return p.CabinetName + " (" + strconv.Itoa(p.StartYear) + "/" + strconv.Itoa(p.EndYear) + ")"
}
