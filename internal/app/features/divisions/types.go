// internal/app/features/divisions/types.go
package divisions

import (
	"net/http"
	"strings"

	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
)

// divisionInput defines validation rules for create and edit.
type divisionInput struct {
	PeriodID    string `validate:"required,objectid" label:"Periode"`
	Name        string `validate:"required,max=80" label:"Nama divisi"`
	Type        string `validate:"required,oneof=Inti Umum" label:"Jenis divisi"`
	Description string `validate:"max=2000" label:"Deskripsi"`
}

// divisionForm carries the raw form values back into the template.
type divisionForm struct {
	PeriodID    string
	Name        string
	Type        string
	Description string
	LogoURL     string
}

func readDivisionForm(r *http.Request) (divisionForm, divisionInput) {
	f := divisionForm{
		PeriodID:    strings.TrimSpace(r.FormValue("period_id")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	return f, divisionInput{PeriodID: f.PeriodID, Name: f.Name, Type: f.Type, Description: f.Description}
}

func (in divisionInput) model() models.Division {
	return models.Division{
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
	}
}

func formFromDivision(d models.Division) divisionForm {
	return divisionForm{
		PeriodID:    d.PeriodID.Hex(),
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		LogoURL:     d.LogoURL,
	}
}

// listItem is a single row in the divisions list.
type listItem struct {
	models.Division
	Position int
}

// listData is the view model for the divisions list page.
type listData struct {
	viewdata.BaseVM
	Picker   shared.PeriodPicker
	PeriodID string
	Items    []listItem
	Flash    string
}

// formData is the view model for the new and edit pages.
type formData struct {
	formutil.Base
	ID      string
	Action  string
	Periods []shared.PeriodOption
	Types   []string
	divisionForm
}
