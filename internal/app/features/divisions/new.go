// internal/app/features/divisions/new.go
package divisions

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeNew renders the "Divisi Baru" form, preselecting ?period= or the
// active period.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/divisions")
		return
	}

	data := formData{Action: "/divisions", Types: models.DivisionTypes}
	data.Type = models.DivisionTypeGeneral
	if p, ok := periodstore.Pick(ps, query.Get(r, "period")); ok {
		data.PeriodID = p.ID.Hex()
	}
	data.Periods = shared.PeriodOptions(ps, data.PeriodID)
	formutil.SetBase(&data.Base, r, "Divisi Baru", "/divisions")
	templates.Render(w, r, "division_form", data)
}

// HandleCreate processes the new division form, including an optional logo.
// The division is appended after the period's last ranked division.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := uploads.ParseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid atau berkas terlalu besar.", "/divisions")
		return
	}

	form, input := readDivisionForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	renderWithError := func(msg string) {
		data := formData{Action: "/divisions", Types: models.DivisionTypes, divisionForm: form}
		if ps, err := h.Periods.List(ctx); err == nil {
			data.Periods = shared.PeriodOptions(ps, form.PeriodID)
		}
		formutil.SetBase(&data.Base, r, "Divisi Baru", "/divisions")
		data.SetError(msg)
		templates.Render(w, r, "division_form", data)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	pid, _ := primitive.ObjectIDFromHex(input.PeriodID)
	if _, err := h.Periods.GetByID(ctx, pid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			renderWithError("Periode tidak ditemukan.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load period failed", err, "Divisi gagal disimpan.", "/divisions")
		return
	}

	d := input.model()
	d.PeriodID = pid
	d, err := h.Divisions.Create(ctx, d)
	if err != nil {
		if errors.Is(err, divisionstore.ErrDuplicateDivision) {
			renderWithError("Divisi dengan nama ini sudah ada pada periode tersebut.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create division failed", err, "Divisi gagal disimpan.", "/divisions")
		return
	}

	if msg := h.storeLogo(ctx, r, d); msg != "" {
		// The division exists; send the user to its edit page to retry the logo.
		data := formData{ID: d.ID.Hex(), Action: "/divisions/" + d.ID.Hex() + "/edit", Types: models.DivisionTypes, divisionForm: formFromDivision(d)}
		if ps, err := h.Periods.List(ctx); err == nil {
			data.Periods = shared.PeriodOptions(ps, form.PeriodID)
		}
		formutil.SetBase(&data.Base, r, "Ubah Divisi", "/divisions")
		data.SetError("Divisi tersimpan, tetapi logo gagal diunggah: " + msg)
		templates.Render(w, r, "division_form", data)
		return
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.DivisionsBackURL), "created"), http.StatusSeeOther)
}

// storeLogo saves an uploaded logo for d and removes the one it replaces.
// It returns a user message on failure and "" on success or when no file
// was sent.
func (h *Handler) storeLogo(ctx context.Context, r *http.Request, d models.Division) string {
	saved, err := h.Images.Save(ctx, r, "logo", "divisions")
	if errors.Is(err, uploads.ErrNoFile) {
		return ""
	}
	if err != nil {
		if msg := uploads.Message(err); msg != "" {
			return msg
		}
		h.Log.Error("division logo upload failed", zap.String("division_id", d.ID.Hex()), zap.Error(err))
		return "Logo gagal diunggah. Coba lagi."
	}
	if err := h.Divisions.SetLogo(ctx, d.ID, saved.URL, saved.Path); err != nil {
		h.Log.Error("set division logo failed", zap.String("division_id", d.ID.Hex()), zap.Error(err))
		h.Images.Remove(ctx, saved.Path)
		return "Logo gagal disimpan. Coba lagi."
	}
	h.Images.Remove(ctx, d.LogoPath)
	return ""
}
