// internal/app/features/positions/form.go
package positions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	positionstore "github.com/osishub/osishub/internal/app/store/positions"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const duplicateMsg = "Jabatan dengan nama ini sudah ada."

// ServeNew renders the new position form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "position_form", newFormData(r, "Jabatan Baru", "", positionInput{Kind: models.PositionKindDivision}))
}

// HandleCreate adds a catalog entry.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/positions")
		return
	}
	in := readPositionInput(r)

	renderWithError := func(msg string) {
		data := newFormData(r, "Jabatan Baru", "", in)
		data.SetError(msg)
		templates.Render(w, r, "position_form", data)
	}

	if result := inputval.Validate(in); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Positions.Create(ctx, models.Position{Name: in.Name, Kind: in.Kind}); err != nil {
		if errors.Is(err, positionstore.ErrDuplicatePosition) {
			renderWithError(duplicateMsg)
			return
		}
		h.ErrLog.LogServerError(w, r, "create position failed", err, "Jabatan gagal disimpan.", "/positions")
		return
	}
	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.PositionsBackURL), "created"), http.StatusSeeOther)
}

// ServeEdit renders the edit form for one position.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID jabatan tidak valid.", "/positions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Positions.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Jabatan tidak ditemukan.", "/positions")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load position failed", err, "Jabatan tidak dapat dimuat.", "/positions")
		return
	}
	templates.Render(w, r, "position_form", newFormData(r, "Ubah Jabatan", idHex, positionInput{Name: p.Name, Kind: p.Kind}))
}

// HandleEdit renames a position or changes its kind. Changing the kind does
// not move existing holders; the member form flags them on their next edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/positions")
		return
	}
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID jabatan tidak valid.", "/positions")
		return
	}
	in := readPositionInput(r)

	renderWithError := func(msg string) {
		data := newFormData(r, "Ubah Jabatan", idHex, in)
		data.SetError(msg)
		templates.Render(w, r, "position_form", data)
	}

	if result := inputval.Validate(in); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Positions.Update(ctx, oid, models.Position{Name: in.Name, Kind: in.Kind}); err != nil {
		if errors.Is(err, positionstore.ErrDuplicatePosition) {
			renderWithError(duplicateMsg)
			return
		}
		h.ErrLog.LogServerError(w, r, "update position failed", err, "Perubahan gagal disimpan.", "/positions")
		return
	}
	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.PositionsBackURL), "saved"), http.StatusSeeOther)
}

// HandleDelete removes a catalog entry unless members still hold it.
//
// Route: POST /positions/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID jabatan tidak valid.", "/positions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	back := navigation.SafeBackURL(r, navigation.PositionsBackURL)
	n, err := h.Positions.Delete(ctx, oid)
	if errors.Is(err, positionstore.ErrInUse) {
		http.Redirect(w, r, formutil.WithNotice(back, "in_use"), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete position failed", err, "Jabatan gagal dihapus.", "/positions")
		return
	}
	if n == 0 {
		h.Log.Info("position delete: no document found (idempotent)", zap.String("position_id", idHex))
	} else {
		h.Audit.Admin(ctx, r, audit.EventPositionDeleted, map[string]string{"position_id": idHex})
	}
	http.Redirect(w, r, formutil.WithNotice(back, "deleted"), http.StatusSeeOther)
}
