// internal/app/features/periods/types.go
package periods

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
)

// periodInput defines validation rules shared by create, edit and wizard.
type periodInput struct {
	CabinetName string `validate:"required,max=120" label:"Nama kabinet"`
	StartYear   int    `validate:"year" label:"Tahun mulai"`
	EndYear     int    `validate:"year,gtefield=StartYear" label:"Tahun selesai"`
	Motto       string `validate:"max=300" label:"Motto"`
}

// periodForm carries the raw form values back into the template.
type periodForm struct {
	CabinetName string
	StartYear   string
	EndYear     string
	Motto       string
}

func readPeriodForm(r *http.Request) (periodForm, periodInput) {
	f := periodForm{
		CabinetName: strings.TrimSpace(r.FormValue("cabinet_name")),
		StartYear:   strings.TrimSpace(r.FormValue("start_year")),
		EndYear:     strings.TrimSpace(r.FormValue("end_year")),
		Motto:       strings.TrimSpace(r.FormValue("motto")),
	}
	// Unparseable years become 0 and fail the "year" rule.
	sy, _ := strconv.Atoi(f.StartYear)
	ey, _ := strconv.Atoi(f.EndYear)
	return f, periodInput{CabinetName: f.CabinetName, StartYear: sy, EndYear: ey, Motto: f.Motto}
}

func (in periodInput) model() models.Period {
	return models.Period{
		CabinetName: in.CabinetName,
		StartYear:   in.StartYear,
		EndYear:     in.EndYear,
		Motto:       in.Motto,
	}
}

func formFromPeriod(p models.Period) periodForm {
	return periodForm{
		CabinetName: p.CabinetName,
		StartYear:   strconv.Itoa(p.StartYear),
		EndYear:     strconv.Itoa(p.EndYear),
		Motto:       p.Motto,
	}
}

// listItem is a single row in the periods list.
type listItem struct {
	models.Period
	DivisionsCount int64
}

// listData is the view model for the periods list page.
type listData struct {
	viewdata.BaseVM
	Items []listItem
	Flash string
}

// formData is the view model for the new and edit pages.
type formData struct {
	formutil.Base
	ID     string
	Action string
	periodForm
}

// wizardData is the view model for the period wizard.
type wizardData struct {
	formutil.Base
	periodForm
	Divisions string
	CopyFrom  string
	Activate  bool
	Periods   []models.Period
}
