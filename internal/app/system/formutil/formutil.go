// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form is re-rendered with the
// user's previously entered values, the first error message, and everything
// the form needs (select options, cascade state).
//
// Example usage:
//
//	type newPeriodData struct {
//		formutil.Base
//		CabinetName string
//	}
//
//	data := newPeriodData{CabinetName: name}
//	formutil.SetBase(&data.Base, r, "Periode Baru", "/periods")
//	data.SetError("Nama kabinet wajib diisi.")
//	templates.Render(w, r, "period_new", data)
package formutil

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/osishub/osishub/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase populates the common Base fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the error message on a Base struct. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// Notice returns the message for the request's "notice" query code, or ""
// when the code is missing or unknown. Only fixed messages are shown, never
// text taken from the URL.
func Notice(r *http.Request, messages map[string]string) string {
	return messages[r.URL.Query().Get("notice")]
}

// WithNotice appends notice=code to target, for redirect-after-post.
func WithNotice(target, code string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "notice=" + url.QueryEscape(code)
}
