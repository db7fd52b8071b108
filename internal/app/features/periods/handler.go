// internal/app/features/periods/handler.go
package periods

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for cabinet periods.
type Handler struct {
	Periods   *periodstore.Store
	Divisions *divisionstore.Store
	Audit     *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a periods Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Periods:   periodstore.New(db),
		Divisions: divisionstore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}
