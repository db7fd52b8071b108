// internal/domain/models/program.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program statuses.
const (
	ProgramPlanned   = "Rencana"
	ProgramRunning   = "Berjalan"
	ProgramDone      = "Selesai"
	ProgramPostponed = "Tunda"
)

// ProgramStatuses is the canonical list in display order.
var ProgramStatuses = []string{ProgramPlanned, ProgramRunning, ProgramDone, ProgramPostponed}

// Program is a work program ("program kerja"). A nil DivisionID means the
// program belongs to the whole organization rather than one division.
type Program struct {
	ID            primitive.ObjectID  `bson:"_id" json:"id"`
	Title         string              `bson:"title" json:"title"`
	TitleCI       string              `bson:"title_ci" json:"-"`
	Date          *time.Time          `bson:"date,omitempty" json:"date,omitempty"`
	Status        string              `bson:"status" json:"status"`
	PeriodID      primitive.ObjectID  `bson:"period_id" json:"period_id"`
	DivisionID    *primitive.ObjectID `bson:"division_id,omitempty" json:"division_id,omitempty"`
	ResponsibleID *primitive.ObjectID `bson:"responsible_id,omitempty" json:"responsible_id,omitempty"`
	Description   string              `bson:"description" json:"description"`
	EmbedURL      string              `bson:"embed_url,omitempty" json:"embed_url,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
