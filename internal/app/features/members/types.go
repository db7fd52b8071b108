// internal/app/features/members/types.go
package members

import (
	"net/http"
	"strings"

	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memberInput defines validation rules for create and edit. The cascade
// has already dropped period, division and position values that do not fit
// together, so a required level that resolved empty fails here.
type memberInput struct {
	FullName    string `validate:"required,max=120" label:"Nama lengkap"`
	Gender      string `validate:"required,oneof=L P" label:"Jenis kelamin"`
	PeriodID    string `validate:"required,objectid" label:"Periode"`
	DivisionID  string `validate:"required,objectid" label:"Divisi"`
	PositionID  string `validate:"omitempty,objectid" label:"Jabatan"`
	SubPosition string `validate:"max=80" label:"Sub jabatan"`
	ClassName   string `validate:"max=40" label:"Kelas"`
	Instagram   string `validate:"max=60" label:"Instagram"`
	Quote       string `validate:"max=300" label:"Kutipan"`
}

// memberForm carries the raw form values back into the template.
type memberForm struct {
	FullName    string
	Gender      string
	SubPosition string
	ClassName   string
	Instagram   string
	Quote       string
	PhotoURL    string
}

// readMemberForm returns the text fields and the three cascade selections.
func readMemberForm(r *http.Request) (memberForm, []string) {
	f := memberForm{
		FullName:    strings.TrimSpace(r.FormValue("full_name")),
		Gender:      strings.TrimSpace(r.FormValue("gender")),
		SubPosition: strings.TrimSpace(r.FormValue("sub_position")),
		ClassName:   strings.TrimSpace(r.FormValue("class_name")),
		Instagram:   strings.TrimPrefix(strings.TrimSpace(r.FormValue("instagram")), "@"),
		Quote:       strings.TrimSpace(r.FormValue("quote")),
	}
	return f, selections(r)
}

// selections reads period_id, division_id and position_id in chain order.
func selections(r *http.Request) []string {
	return []string{
		strings.TrimSpace(r.FormValue("period_id")),
		strings.TrimSpace(r.FormValue("division_id")),
		strings.TrimSpace(r.FormValue("position_id")),
	}
}

func newInput(f memberForm, sel []string) memberInput {
	return memberInput{
		FullName:    f.FullName,
		Gender:      f.Gender,
		PeriodID:    sel[0],
		DivisionID:  sel[1],
		PositionID:  sel[2],
		SubPosition: f.SubPosition,
		ClassName:   f.ClassName,
		Instagram:   f.Instagram,
		Quote:       f.Quote,
	}
}

// model converts validated input. IDs were checked by the objectid rule.
func (in memberInput) model() models.Member {
	m := models.Member{
		FullName:    in.FullName,
		Gender:      in.Gender,
		SubPosition: in.SubPosition,
		ClassName:   in.ClassName,
		Instagram:   in.Instagram,
		Quote:       in.Quote,
	}
	m.PeriodID, _ = primitive.ObjectIDFromHex(in.PeriodID)
	m.DivisionID, _ = primitive.ObjectIDFromHex(in.DivisionID)
	if in.PositionID != "" {
		pid, _ := primitive.ObjectIDFromHex(in.PositionID)
		m.PositionID = &pid
	}
	return m
}

func formFromMember(m models.Member) (memberForm, []string) {
	sel := []string{m.PeriodID.Hex(), m.DivisionID.Hex(), ""}
	if m.PositionID != nil {
		sel[2] = m.PositionID.Hex()
	}
	return memberForm{
		FullName:    m.FullName,
		Gender:      m.Gender,
		SubPosition: m.SubPosition,
		ClassName:   m.ClassName,
		Instagram:   m.Instagram,
		Quote:       m.Quote,
		PhotoURL:    m.PhotoURL,
	}, sel
}

// formData is the view model for the new and edit pages.
type formData struct {
	formutil.Base
	ID      string
	Action  string
	Cascade cascadeFields
	memberForm
}

// listItem is one row of the member list.
type listItem struct {
	models.Member
	DivisionName string
	PositionName string
}

// listData is the view model for the member list.
type listData struct {
	viewdata.BaseVM
	Picker    shared.PeriodPicker
	PeriodID  string
	Query     string
	Division  string
	Divisions []models.Division
	Items     []listItem
	Pager     shared.Pager
	Flash     string
}

// uploadData is the view model for the CSV import page.
type uploadData struct {
	formutil.Base
	Periods  []shared.PeriodOption
	PeriodID string
	Created  int
	Done     bool
}
