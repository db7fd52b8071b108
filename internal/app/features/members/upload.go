// internal/app/features/members/upload.go
package members

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/store/audit"
	periodstore "github.com/osishub/osishub/internal/app/store/periods"
	"github.com/osishub/osishub/internal/app/system/csvutil"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (h *Handler) renderUpload(w http.ResponseWriter, r *http.Request, ps []models.Period, periodID string, apply func(*uploadData)) {
	data := uploadData{PeriodID: periodID, Periods: shared.PeriodOptions(ps, periodID)}
	back := "/members"
	if periodID != "" {
		back += "?period=" + periodID
	}
	formutil.SetBase(&data.Base, r, "Impor Anggota (CSV)", back)
	if apply != nil {
		apply(&data)
	}
	templates.Render(w, r, "member_upload_csv", data)
}

// ServeUploadCSV handles GET /members/upload_csv?period=.
func (h *Handler) ServeUploadCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/members")
		return
	}
	selected := ""
	if p, ok := periodstore.Pick(ps, query.Get(r, "period")); ok {
		selected = p.ID.Hex()
	}
	h.renderUpload(w, r, ps, selected, nil)
}

// HandleUploadCSV imports members into one period. Every row must parse and
// resolve (division in the period, position kind fitting the division type)
// before anything is stored; otherwise nothing is inserted and the row
// errors are listed.
//
// Route: POST /members/upload_csv
func (h *Handler) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(csvutil.MaxUploadSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Berkas terlalu besar atau formulir tidak valid (maks. 5 MB).", "/members")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ps, err := h.Periods.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list periods failed", err, "Daftar periode tidak dapat dimuat.", "/members")
		return
	}

	periodHex := r.FormValue("period_id")
	renderWithError := func(msg string) {
		h.renderUpload(w, r, ps, periodHex, func(d *uploadData) { d.SetError(msg) })
	}

	var period models.Period
	found := false
	for _, p := range ps {
		if p.ID.Hex() == periodHex {
			period, found = p, true
			break
		}
	}
	if !found {
		renderWithError("Pilih periode tujuan.")
		return
	}

	file, _, err := r.FormFile("csv")
	if err != nil {
		renderWithError("Berkas CSV wajib diunggah.")
		return
	}
	defer file.Close()

	parsed, err := csvutil.ParseMembersCSV(file, csvutil.DefaultParseOptions())
	if errors.Is(err, csvutil.ErrTooManyRows) {
		renderWithError("Berkas berisi terlalu banyak baris (maks. 2000).")
		return
	}
	if err != nil {
		renderWithError("Berkas tidak dapat dibaca sebagai CSV.")
		return
	}
	if parsed.HasErrors() {
		h.renderUpload(w, r, ps, periodHex, func(d *uploadData) { d.Error = csvutil.FormatErrorsHTML(parsed.Errors, 10) })
		return
	}
	if len(parsed.Rows) == 0 {
		renderWithError("Berkas tidak berisi data anggota.")
		return
	}

	divisions, err := h.Divisions.Find(ctx, bson.M{"period_id": period.ID})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list divisions failed", err, "Impor gagal.", "/members")
		return
	}
	positions, err := h.Positions.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list positions failed", err, "Impor gagal.", "/members")
		return
	}

	members, rowErrs := csvutil.ResolveMembers(parsed.Rows, period, divisions, positions)
	if len(rowErrs) > 0 {
		h.renderUpload(w, r, ps, periodHex, func(d *uploadData) { d.Error = csvutil.FormatErrorsHTML(rowErrs, 10) })
		return
	}

	n, err := h.Members.CreateMany(ctx, members)
	if err != nil {
		h.Log.Error("member import stopped", zap.String("period_id", periodHex), zap.Int("inserted", n), zap.Error(err))
		h.renderUpload(w, r, ps, periodHex, func(d *uploadData) {
			d.Created = n
			d.SetError("Impor berhenti karena kesalahan server. Baris yang sudah tersimpan tetap ada; periksa daftar anggota sebelum mengunggah ulang.")
		})
		return
	}

	h.Log.Info("members imported", zap.String("period_id", periodHex), zap.Int("count", n))
	h.Audit.Admin(ctx, r, audit.EventMembersImported, map[string]string{"period_id": periodHex, "count": strconv.Itoa(n)})
	h.renderUpload(w, r, ps, periodHex, func(d *uploadData) {
		d.Created = n
		d.Done = true
	})
}

// ServeCSVTemplate downloads the import template.
//
// Route: GET /members/upload_csv/template
func (h *Handler) ServeCSVTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template-anggota.csv"`)
	if err := csvutil.WriteMemberTemplate(w); err != nil {
		h.Log.Warn("write member csv template failed", zap.Error(err))
	}
}
