// internal/app/features/programs/types.go
package programs

import (
	"net/http"
	"strings"
	"time"

	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/selectchain"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateLayout is the value format of <input type="date">.
const dateLayout = "2006-01-02"

type programInput struct {
	Title         string `validate:"required,max=150" label:"Judul"`
	Date          string `validate:"omitempty,datetime=2006-01-02" label:"Tanggal"`
	Status        string `validate:"required,oneof=Rencana Berjalan Selesai Tunda" label:"Status"`
	PeriodID      string `validate:"required,objectid" label:"Periode"`
	DivisionID    string `validate:"required" label:"Divisi"`
	ResponsibleID string `validate:"omitempty,objectid" label:"Penanggung jawab"`
	Description   string `validate:"max=10000" label:"Deskripsi"`
	EmbedURL      string `validate:"max=500,httpurl" label:"Tautan embed"`
}

// programForm holds the raw field values. Heading is the program title.
type programForm struct {
	Heading     string
	Date        string
	Status      string
	Description string
	EmbedURL    string
}

func readProgramForm(r *http.Request) (programForm, []string) {
	f := programForm{
		Heading:     strings.TrimSpace(r.FormValue("title")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		Status:      strings.TrimSpace(r.FormValue("status")),
		Description: strings.TrimSpace(r.FormValue("description")),
		EmbedURL:    strings.TrimSpace(r.FormValue("embed_url")),
	}
	return f, selections(r)
}

func selections(r *http.Request) []string {
	return []string{
		strings.TrimSpace(r.FormValue("period_id")),
		strings.TrimSpace(r.FormValue("division_id")),
		strings.TrimSpace(r.FormValue("responsible_id")),
	}
}

func newInput(f programForm, sel []string) programInput {
	return programInput{
		Title:         f.Heading,
		Date:          f.Date,
		Status:        f.Status,
		PeriodID:      sel[0],
		DivisionID:    sel[1],
		ResponsibleID: sel[2],
		Description:   f.Description,
		EmbedURL:      f.EmbedURL,
	}
}

// model converts validated input. The general division becomes a nil
// DivisionID.
func (in programInput) model() models.Program {
	p := models.Program{
		Title:       in.Title,
		Status:      in.Status,
		Description: in.Description,
		EmbedURL:    in.EmbedURL,
	}
	p.PeriodID, _ = primitive.ObjectIDFromHex(in.PeriodID)
	if in.DivisionID != selectchain.GeneralDivision {
		if did, err := primitive.ObjectIDFromHex(in.DivisionID); err == nil {
			p.DivisionID = &did
		}
	}
	if in.ResponsibleID != "" {
		rid, _ := primitive.ObjectIDFromHex(in.ResponsibleID)
		p.ResponsibleID = &rid
	}
	if in.Date != "" {
		if d, err := time.Parse(dateLayout, in.Date); err == nil {
			p.Date = &d
		}
	}
	return p
}

func formFromProgram(p models.Program) (programForm, []string) {
	sel := []string{p.PeriodID.Hex(), selectchain.GeneralDivision, ""}
	if p.DivisionID != nil {
		sel[1] = p.DivisionID.Hex()
	}
	if p.ResponsibleID != nil {
		sel[2] = p.ResponsibleID.Hex()
	}
	f := programForm{
		Heading:     p.Title,
		Status:      p.Status,
		Description: p.Description,
		EmbedURL:    p.EmbedURL,
	}
	if p.Date != nil {
		f.Date = p.Date.Format(dateLayout)
	}
	return f, sel
}

type formData struct {
	formutil.Base
	ID       string
	Action   string
	Statuses []string
	Cascade  cascadeFields
	programForm
}

type listItem struct {
	models.Program
	DivisionName    string
	ResponsibleName string
	Excerpt         string
}

type statusTab struct {
	Value  string
	Label  string
	Count  int64
	Active bool
}

type listData struct {
	viewdata.BaseVM
	Picker   shared.PeriodPicker
	PeriodID string
	Status   string
	Query    string
	Tabs     []statusTab
	Items    []listItem
	Pager    shared.Pager
	Flash    string
}
