// internal/app/features/programs/form.go
package programs

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/cascade"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/navigation"
	"github.com/osishub/osishub/internal/app/system/selectchain"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const clearedMsg = "Divisi atau penanggung jawab tidak cocok dengan pilihan di atasnya dan telah dikosongkan. Periksa kembali."

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, title, id string, f programForm, st cascade.State, errMsg string) {
	action := "/programs"
	if id != "" {
		action = "/programs/" + id + "/edit"
	}
	back := "/programs"
	if sel := st.Selected(); len(sel) > 0 && sel[0] != "" {
		back += "?period=" + sel[0]
	}
	data := formData{ID: id, Action: action, Statuses: models.ProgramStatuses, Cascade: newCascadeFields(st), programForm: f}
	formutil.SetBase(&data.Base, r, title, back)
	if errMsg != "" {
		data.SetError(errMsg)
	}
	templates.Render(w, r, "program_form", data)
}

// ServeNew renders the new program form. Division defaults to the general
// option of the preselected period.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	chain, err := h.programChain(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load program chain failed", err, "Formulir program tidak dapat dimuat.", "/programs")
		return
	}
	period := query.Get(r, "period")
	if period == "" {
		if p, err := h.Periods.Active(ctx); err == nil {
			period = p.ID.Hex()
		}
	}
	st := chain.Resolve([]string{period, selectchain.GeneralDivision, ""})
	h.renderForm(w, r, "Program Kerja Baru", "", programForm{Status: models.ProgramPlanned}, st, "")
}

// HandleCreate stores a new program.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// ServeEdit renders the edit form for one program.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID program tidak valid.", "/programs")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Programs.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "Program kerja tidak ditemukan.", "/programs")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load program failed", err, "Program kerja tidak dapat dimuat.", "/programs")
		return
	}
	chain, err := h.programChain(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load program chain failed", err, "Formulir program tidak dapat dimuat.", "/programs")
		return
	}

	f, sel := formFromProgram(p)
	st := chain.Resolve(sel)
	msg := ""
	if st.AnyCleared() {
		msg = clearedMsg
	}
	h.renderForm(w, r, "Ubah Program Kerja", idHex, f, st, msg)
}

// HandleEdit processes the edit form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	if _, err := primitive.ObjectIDFromHex(idHex); err != nil {
		uierrors.RenderBadRequest(w, r, "ID program tidak valid.", "/programs")
		return
	}
	h.save(w, r, idHex)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, idHex string) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/programs")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	title := "Program Kerja Baru"
	if idHex != "" {
		title = "Ubah Program Kerja"
	}

	form, sel := readProgramForm(r)
	chain, err := h.programChain(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load program chain failed", err, "Program kerja gagal disimpan.", "/programs")
		return
	}
	st := chain.Resolve(sel)

	renderWithError := func(msg string) {
		h.renderForm(w, r, title, idHex, form, st, msg)
	}

	if st.AnyCleared() {
		renderWithError(clearedMsg)
		return
	}
	input := newInput(form, st.Selected())
	if result := inputval.Validate(input); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	p := input.model()
	notice := "created"
	if idHex == "" {
		if _, err := h.Programs.Create(ctx, p); err != nil {
			h.ErrLog.LogServerError(w, r, "create program failed", err, "Program kerja gagal disimpan.", "/programs")
			return
		}
	} else {
		oid, _ := primitive.ObjectIDFromHex(idHex)
		if _, err := h.Programs.GetByID(ctx, oid); errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "Program kerja tidak ditemukan.", "/programs")
			return
		}
		if err := h.Programs.Update(ctx, oid, p); err != nil {
			h.ErrLog.LogServerError(w, r, "update program failed", err, "Perubahan gagal disimpan.", "/programs")
			return
		}
		notice = "saved"
	}

	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.ProgramsBackURL), notice), http.StatusSeeOther)
}

// HandleDelete removes a program.
//
// Route: POST /programs/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "ID program tidak valid.", "/programs")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Programs.Delete(ctx, oid); err != nil {
		h.ErrLog.LogServerError(w, r, "delete program failed", err, "Program kerja gagal dihapus.", "/programs")
		return
	}
	h.Audit.Admin(ctx, r, audit.EventProgramDeleted, map[string]string{"program_id": idHex})
	http.Redirect(w, r, formutil.WithNotice(navigation.SafeBackURL(r, navigation.ProgramsBackURL), "deleted"), http.StatusSeeOther)
}
