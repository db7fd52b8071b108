// Package home serves the public site: the landing page, the cabinet
// structure, the work programs and the content pages.
package home

import (
	"net/http"

	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	contentstore "github.com/osishub/osishub/internal/app/store/contents"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	memberstore "github.com/osishub/osishub/internal/app/store/members"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	positionstore "github.com/osishub/osishub/internal/app/store/positions"
	programstore "github.com/osishub/osishub/internal/app/store/programs"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the public pages.
type Handler struct {
	Periods   *periodstore.Store
	Divisions *divisionstore.Store
	Positions *positionstore.Store
	Members   *memberstore.Store
	Programs  *programstore.Store
	Contents  *contentstore.Store
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Periods:   periodstore.New(db),
		Divisions: divisionstore.New(db),
		Positions: positionstore.New(db),
		Members:   memberstore.New(db),
		Programs:  programstore.New(db),
		Contents:  contentstore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.ErrLog.LogServerError(w, r, msg, err, "Halaman tidak dapat dimuat saat ini.", "/")
}
