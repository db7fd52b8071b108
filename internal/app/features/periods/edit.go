// internal/app/features/periods/edit.go
package periods

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeEdit renders the edit form for one period.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID periode tidak valid.", "/periods")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Periods.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Periode tidak ditemukan.", "/periods")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load period failed", err, "Periode tidak dapat dimuat.", "/periods")
		return
	}

	data := formData{ID: idHex, Action: "/periods/" + idHex + "/edit", periodForm: formFromPeriod(p)}
	formutil.SetBase(&data.Base, r, "Ubah Periode", "/periods")
	templates.Render(w, r, "period_form", data)
}

// HandleEdit processes the edit form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/periods")
		return
	}

	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID periode tidak valid.", "/periods")
		return
	}

	form, input := readPeriodForm(r)

	renderWithError := func(msg string) {
		data := formData{ID: idHex, Action: "/periods/" + idHex + "/edit", periodForm: form}
		formutil.SetBase(&data.Base, r, "Ubah Periode", "/periods")
		data.SetError(msg)
		templates.Render(w, r, "period_form", data)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Periods.Update(ctx, oid, input.model()); err != nil {
		if errors.Is(err, periodstore.ErrDuplicatePeriod) {
			renderWithError("Periode dengan nama kabinet dan tahun yang sama sudah ada.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update period failed", err, "Perubahan gagal disimpan.", "/periods")
		return
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.PeriodsBackURL), "saved"), http.StatusSeeOther)
}
