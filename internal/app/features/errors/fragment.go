// internal/app/features/errors/fragment.go
package errors

import (
	"html/template"
	"net/http"
)

// writeFragment writes an escaped inline alert. HTMX does not swap non-2xx
// responses by default, so the status is sent in a header and the body
// with 200, and the alert lands in the target.
func writeFragment(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Error-Status", http.StatusText(status))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="alert alert-error" role="alert">` + template.HTMLEscapeString(msg) + `</div>`))
}
