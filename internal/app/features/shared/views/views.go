// internal/app/features/shared/views/views.go
package shared

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Embed the partials reused across admin features: the form error alert,
// the range pager and the cascading select.
//
//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "partials",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
