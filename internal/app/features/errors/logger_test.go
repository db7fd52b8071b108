package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTMXLogServerError_WritesFragment(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	el := NewErrorLogger(zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/members/options", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	el.HTMXLogServerError(rec, req, "load options failed", errors.New("boom"), "Gagal <memuat>.", "/members")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Error-Status"); got != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("X-Error-Status = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "Gagal &lt;memuat&gt;.") {
		t.Errorf("body not escaped: %s", rec.Body.String())
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["path"] != "/members/options" || ctx["method"] != http.MethodGet {
		t.Errorf("missing request fields: %v", ctx)
	}
	if ctx["error"] != "boom" {
		t.Errorf("error field = %v", ctx["error"])
	}
}

func TestHTMXLogBadRequest_Fragment(t *testing.T) {
	el := NewErrorLogger(nil)
	req := httptest.NewRequest(http.MethodPost, "/divisions/reorder/move", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	el.HTMXLogBadRequest(rec, req, "bad move", nil, "Arah tidak valid.", "/divisions")

	if !strings.Contains(rec.Body.String(), "Arah tidak valid.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
