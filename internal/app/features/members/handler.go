// internal/app/features/members/handler.go
package members

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	memberstore "github.com/osishub/osishub/internal/app/store/members"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	positionstore "github.com/osishub/osishub/internal/app/store/positions"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for members.
type Handler struct {
	Periods   *periodstore.Store
	Divisions *divisionstore.Store
	Positions *positionstore.Store
	Members   *memberstore.Store
	Images    uploads.Images
	Audit     *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a members Handler. images stores member photos.
func NewHandler(db *mongo.Database, images uploads.Images, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Periods:   periodstore.New(db),
		Divisions: divisionstore.New(db),
		Positions: positionstore.New(db),
		Members:   memberstore.New(db),
		Images:    images,
		ErrLog:    errLog,
		Log:       logger,
	}
}
