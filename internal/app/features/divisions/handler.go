// internal/app/features/divisions/handler.go
package divisions

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for divisions.
type Handler struct {
	Periods   *periodstore.Store
	Divisions *divisionstore.Store
	Images    uploads.Images
	Audit     *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a divisions Handler. images stores division logos.
func NewHandler(db *mongo.Database, images uploads.Images, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Periods:   periodstore.New(db),
		Divisions: divisionstore.New(db),
		Images:    images,
		ErrLog:    errLog,
		Log:       logger,
	}
}
