// internal/app/features/positions/handler.go
package positions

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	memberstore "github.com/osishub/osishub/internal/app/store/members"
	positionstore "github.com/osishub/osishub/internal/app/store/positions"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler manages the global position catalog.
type Handler struct {
	Positions *positionstore.Store
	Members   *memberstore.Store
	Audit     *auditlog.Logger
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Positions: positionstore.New(db),
		Members:   memberstore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}
