// internal/app/features/contents/templates.go
package contents

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "contents",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
