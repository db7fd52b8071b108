// internal/app/features/periods/wizard.go
package periods

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CoreDivisionName is the core board created by the wizard.
const CoreDivisionName = "BPH"

// DefaultGeneralDivisions prefills the wizard's division list.
var DefaultGeneralDivisions = []string{
	"Kerohanian",
	"Kedisiplinan",
	"Olahraga",
	"Seni dan Budaya",
	"Humas",
	"Kebersihan dan Lingkungan",
}

// maxWizardDivisions caps the typed division list.
const maxWizardDivisions = 30

// ServeWizard renders the period wizard.
func (h *Handler) ServeWizard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Data periode tidak dapat dimuat.", "/periods")
		return
	}

	data := wizardData{
		Divisions: strings.Join(DefaultGeneralDivisions, "\n"),
		Periods:   ps,
	}
	formutil.SetBase(&data.Base, r, "Wizard Periode Baru", "/periods")
	templates.Render(w, r, "period_wizard", data)
}

// HandleWizard creates a period with its starting divisions and optionally
// activates it. Divisions are either copied from an earlier period
// (copy_from) or built from the core board plus one general division per
// non-empty line of the "divisions" field.
func (h *Handler) HandleWizard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/periods")
		return
	}

	form, input := readPeriodForm(r)
	divisionsRaw := r.FormValue("divisions")
	copyFrom := strings.TrimSpace(r.FormValue("copy_from"))
	activate := r.FormValue("activate") == "on"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	renderWithError := func(msg string) {
		ps, _ := h.Periods.List(ctx)
		data := wizardData{
			periodForm: form,
			Divisions:  divisionsRaw,
			CopyFrom:   copyFrom,
			Activate:   activate,
			Periods:    ps,
		}
		formutil.SetBase(&data.Base, r, "Wizard Periode Baru", "/periods")
		data.SetError(msg)
		templates.Render(w, r, "period_wizard", data)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	var plan []models.Division
	if copyFrom != "" {
		src, err := primitive.ObjectIDFromHex(copyFrom)
		if err != nil {
			renderWithError("Pilihan periode sumber tidak valid.")
			return
		}
		existing, err := h.Divisions.ListByPeriod(ctx, src)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load source divisions failed", err, "Divisi periode sumber tidak dapat dimuat.", "/periods")
			return
		}
		plan = copyDivisions(existing)
	} else {
		var problem string
		plan, problem = planDivisions(divisionsRaw)
		if problem != "" {
			renderWithError(problem)
			return
		}
	}

	p, err := h.Periods.Create(ctx, input.model())
	if err != nil {
		if errors.Is(err, periodstore.ErrDuplicatePeriod) {
			renderWithError("Periode dengan nama kabinet dan tahun yang sama sudah ada.")
			return
		}
		h.ErrLog.LogServerError(w, r, "create period failed", err, "Periode gagal disimpan.", "/periods")
		return
	}

	for i, d := range plan {
		d.PeriodID = p.ID
		d.Rank = i + 1
		if _, err := h.Divisions.Create(ctx, d); err != nil {
			h.ErrLog.LogServerError(w, r, "wizard division create failed", err,
				fmt.Sprintf("Periode dibuat, tetapi divisi %q gagal disimpan. Lengkapi divisi dari halaman Divisi.", d.Name),
				"/divisions?period="+p.ID.Hex())
			return
		}
	}

	notice := "created"
	if activate {
		if err := h.Periods.Activate(ctx, p.ID); err != nil {
			h.ErrLog.LogServerError(w, r, "wizard activate failed", err,
				"Periode dan divisi dibuat, tetapi aktivasi gagal. Aktifkan dari daftar periode.", "/periods")
			return
		}
		notice = "activated"
	}

	h.Log.Info("period created by wizard",
		zap.String("period_id", p.ID.Hex()),
		zap.Int("divisions", len(plan)),
		zap.Bool("activated", activate))

	http.Redirect(w, r, formutil.WithNotice("/periods", notice), http.StatusSeeOther)
}

// planDivisions turns the typed list into the core board followed by the
// general divisions, in the typed order. Blank lines and case-insensitive
// duplicates are skipped. problem is a user-facing message when the list is
// rejected.
func planDivisions(raw string) (plan []models.Division, problem string) {
	plan = []models.Division{{Name: CoreDivisionName, Type: models.DivisionTypeCore}}
	seen := map[string]bool{text.Fold(CoreDivisionName): true}
	for _, line := range strings.Split(raw, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || seen[text.Fold(name)] {
			continue
		}
		if len([]rune(name)) > 80 {
			return nil, fmt.Sprintf("Nama divisi %q terlalu panjang (maksimal 80 karakter).", name)
		}
		seen[text.Fold(name)] = true
		plan = append(plan, models.Division{Name: name, Type: models.DivisionTypeGeneral})
	}
	if len(plan) > maxWizardDivisions {
		return nil, fmt.Sprintf("Maksimal %d divisi per periode.", maxWizardDivisions)
	}
	return plan, ""
}

// copyDivisions keeps name, description and type of each source division
// in rank order. Logos are not copied; they belong to the old period's
// blobs.
func copyDivisions(src []models.Division) []models.Division {
	out := make([]models.Division, 0, len(src))
	for _, d := range src {
		out = append(out, models.Division{Name: d.Name, Description: d.Description, Type: d.Type})
	}
	return out
}
