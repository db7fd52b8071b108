// internal/app/features/positions/types.go
package positions

import (
	"net/http"
	"strings"

	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
)

type positionInput struct {
	Name string `validate:"required,max=80" label:"Nama jabatan"`
	Kind string `validate:"required,oneof=Inti Divisi" label:"Jenis jabatan"`
}

func readPositionInput(r *http.Request) positionInput {
	return positionInput{
		Name: strings.TrimSpace(r.FormValue("name")),
		Kind: strings.TrimSpace(r.FormValue("kind")),
	}
}

type listItem struct {
	models.Position
	Holders int64
}

type listData struct {
	viewdata.BaseVM
	Items []listItem
	Flash string
}

type formData struct {
	formutil.Base
	ID     string
	Action string
	Kinds  []string
	Name   string
	Kind   string
}

func newFormData(r *http.Request, title, id string, in positionInput) formData {
	action := "/positions"
	if id != "" {
		action = "/positions/" + id + "/edit"
	}
	data := formData{ID: id, Action: action, Kinds: models.PositionKinds, Name: in.Name, Kind: in.Kind}
	formutil.SetBase(&data.Base, r, title, "/positions")
	return data
}
