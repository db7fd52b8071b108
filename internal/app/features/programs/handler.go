// internal/app/features/programs/handler.go
package programs

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	memberstore "github.com/osishub/osishub/internal/app/store/members"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	programstore "github.com/osishub/osishub/internal/app/store/programs"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for work programs.
type Handler struct {
	Periods   *periodstore.Store
	Divisions *divisionstore.Store
	Members   *memberstore.Store
	Programs  *programstore.Store
	Audit     *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a programs Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Periods:   periodstore.New(db),
		Divisions: divisionstore.New(db),
		Members:   memberstore.New(db),
		Programs:  programstore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}
