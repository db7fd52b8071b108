// internal/app/features/dashboard/handler.go
package dashboard

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB      *mongo.Database
	Periods *periodstore.Store
	Audit   *audit.Store
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Periods: periodstore.New(db),
		Audit:   audit.New(db),
		ErrLog:  errLog,
		Log:     logger,
	}
}
