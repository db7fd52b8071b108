// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and then renders the
// matching error page. Handlers hold one and call it instead of writing
// bare http.Error responses.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps logger. A nil logger logs nothing.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs msg at error level and renders a 500 page showing userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs msg at warn level and renders a 400 page showing userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs msg at info level and renders a 404 page showing userMsg.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Info(msg, e.fields(r, err)...)
	RenderNotFound(w, r, userMsg, backURL)
}

// HTMXLogServerError logs like LogServerError but answers an HTMX request
// with a small inline error fragment, so the swap target shows the message
// instead of a whole page.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	if r.Header.Get("HX-Request") != "true" {
		RenderServerError(w, r, userMsg, backURL)
		return
	}
	writeFragment(w, http.StatusInternalServerError, userMsg)
}

// HTMXLogBadRequest is the 400 counterpart of HTMXLogServerError.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	if r.Header.Get("HX-Request") != "true" {
		RenderBadRequest(w, r, userMsg, backURL)
		return
	}
	writeFragment(w, http.StatusBadRequest, userMsg)
}
