// internal/app/features/periods/new.go
package periods

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
)

// ServeNew renders the "Periode Baru" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Action: "/periods"}
	formutil.SetBase(&data.Base, r, "Periode Baru", "/periods")
	templates.Render(w, r, "period_form", data)
}

// HandleCreate processes the new period form. New periods start inactive.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/periods")
		return
	}

	form, input := readPeriodForm(r)

	renderWithError := func(msg string) {
		data := formData{Action: "/periods", periodForm: form}
		formutil.SetBase(&data.Base, r, "Periode Baru", "/periods")
		data.SetError(msg)
		templates.Render(w, r, "period_form", data)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Periods.Create(ctx, input.model()); err != nil {
		if errors.Is(err, periodstore.ErrDuplicatePeriod) {
			renderWithError("Periode dengan nama kabinet dan tahun yang sama sudah ada.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create period failed", err, "Periode gagal disimpan.", "/periods")
		return
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.PeriodsBackURL), "created"), http.StatusSeeOther)
}
