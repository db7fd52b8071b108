// internal/app/features/settings/handler.go
package settings

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	settingsstore "github.com/osishub/osishub/internal/app/store/settings"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler edits the site profile. FallbackName is the configured site name,
// used until the profile is first saved.
type Handler struct {
	Settings     *settingsstore.Store
	Images       uploads.Images
	FallbackName string
	Audit        *auditlog.Logger
	ErrLog       *uierrors.ErrorLogger
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, images uploads.Images, fallbackName string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Settings:     settingsstore.New(db),
		Images:       images,
		FallbackName: fallbackName,
		ErrLog:       errLog,
		Log:          logger,
	}
}
