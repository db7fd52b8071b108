// internal/app/features/contents/handler.go
package contents

import (
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	contentstore "github.com/osishub/osishub/internal/app/store/contents"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler manages the content blocks of the public pages.
type Handler struct {
	Contents *contentstore.Store
	Images   uploads.Images
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, images uploads.Images, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Contents: contentstore.New(db),
		Images:   images,
		ErrLog:   errLog,
		Log:      logger,
	}
}
