// internal/app/features/divisions/edit.go
package divisions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeEdit renders the edit form for one division.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID divisi tidak valid.", "/divisions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Divisions.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Divisi tidak ditemukan.", "/divisions")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load division failed", err, "Divisi tidak dapat dimuat.", "/divisions")
		return
	}

	data := formData{ID: idHex, Action: "/divisions/" + idHex + "/edit", Types: models.DivisionTypes, divisionForm: formFromDivision(d)}
	if ps, err := h.Periods.List(ctx); err == nil {
		data.Periods = shared.PeriodOptions(ps, data.PeriodID)
	}
	formutil.SetBase(&data.Base, r, "Ubah Divisi", "/divisions?period="+d.PeriodID.Hex())
	templates.Render(w, r, "division_form", data)
}

// HandleEdit processes the edit form POST. A division stays in its period;
// the period field is shown read-only. A new logo replaces the old one.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := uploads.ParseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid atau berkas terlalu besar.", "/divisions")
		return
	}

	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID divisi tidak valid.", "/divisions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	current, err := h.Divisions.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Divisi tidak ditemukan.", "/divisions")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load division failed", err, "Divisi tidak dapat dimuat.", "/divisions")
		return
	}

	form, input := readDivisionForm(r)
	form.PeriodID = current.PeriodID.Hex()
	form.LogoURL = current.LogoURL
	input.PeriodID = form.PeriodID

	renderWithError := func(msg string) {
		data := formData{ID: idHex, Action: "/divisions/" + idHex + "/edit", Types: models.DivisionTypes, divisionForm: form}
		if ps, err := h.Periods.List(ctx); err == nil {
			data.Periods = shared.PeriodOptions(ps, form.PeriodID)
		}
		formutil.SetBase(&data.Base, r, "Ubah Divisi", "/divisions?period="+form.PeriodID)
		data.SetError(msg)
		templates.Render(w, r, "division_form", data)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	if err := h.Divisions.Update(ctx, oid, input.model()); err != nil {
		if errors.Is(err, divisionstore.ErrDuplicateDivision) {
			renderWithError("Divisi dengan nama ini sudah ada pada periode tersebut.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update division failed", err, "Perubahan gagal disimpan.", "/divisions")
		return
	}

	if msg := h.storeLogo(ctx, r, current); msg != "" {
		renderWithError("Perubahan tersimpan, tetapi logo gagal diunggah: " + msg)
		return
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.DivisionsBackURL), "saved"), http.StatusSeeOther)
}
