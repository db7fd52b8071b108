// internal/app/features/contents/types.go
package contents

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
)

type contentInput struct {
	Page    string `validate:"required,oneof=beranda visi-misi tentang" label:"Halaman"`
	Heading string `validate:"required,max=150" label:"Judul"`
	Body    string `validate:"max=20000" label:"Isi"`
}

// contentForm carries raw values back into the template. Heading is the
// block title.
type contentForm struct {
	Page     string
	Heading  string
	Body     string
	ImageURL string
}

func readContentForm(r *http.Request) (contentForm, contentInput) {
	f := contentForm{
		Page:    strings.TrimSpace(r.FormValue("page")),
		Heading: strings.TrimSpace(r.FormValue("title")),
		Body:    strings.TrimSpace(r.FormValue("body")),
	}
	return f, contentInput{Page: f.Page, Heading: f.Heading, Body: f.Body}
}

func (in contentInput) model() models.PageContent {
	return models.PageContent{Page: in.Page, Title: in.Heading, Body: in.Body}
}

func formFromContent(c models.PageContent) contentForm {
	return contentForm{Page: c.Page, Heading: c.Title, Body: c.Body, ImageURL: c.ImageURL}
}

type formData struct {
	formutil.Base
	ID     string
	Action string
	Pages  []models.PageInfo
	contentForm
}

type pageTab struct {
	Key    string
	Name   string
	Count  int64
	Active bool
}

type listItem struct {
	models.PageContent
	Hero    bool
	Excerpt string
}

type listData struct {
	viewdata.BaseVM
	Page     string
	PageName string
	Tabs     []pageTab
	Items    []listItem
	Flash    string
}

type previewData struct {
	HTML template.HTML
}

// pageName returns the display name of key, or "" for unknown keys.
func pageName(key string) string {
	for _, p := range models.Pages {
		if p.Key == key {
			return p.Name
		}
	}
	return ""
}

// pickPage returns key when it names a known page, else the home page.
func pickPage(key string) string {
	if models.IsValidPage(key) {
		return key
	}
	return models.PageHome
}
