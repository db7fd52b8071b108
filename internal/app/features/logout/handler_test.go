package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osishub/osishub/internal/app/features/logout"
	"github.com/osishub/osishub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-32b", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestServeLogout_RedirectsToHome(t *testing.T) {
	handler := logout.NewHandler(newSessionManager(t), zap.NewNop())

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}
}

func TestServeLogout_HTMX_ReturnsHXRedirect(t *testing.T) {
	handler := logout.NewHandler(newSessionManager(t), zap.NewNop())

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, req)

	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect: got %q, want %q", got, "/")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for HTMX, got %d", http.StatusOK, rec.Code)
	}
}

func TestServeLogout_ClearsSessionAndNotifies(t *testing.T) {
	sm := newSessionManager(t)
	var events []auth.SessionEvent
	sm.OnSessionChange(func(ev auth.SessionEvent) { events = append(events, ev) })

	// Sign in to obtain a real cookie.
	rec1 := httptest.NewRecorder()
	user := auth.SessionUser{ID: "507f1f77bcf86cd799439011", Name: "Admin", LoginID: "admin", Role: "admin"}
	if err := sm.SignIn(rec1, httptest.NewRequest("POST", "/login", nil), user); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	req := httptest.NewRequest("POST", "/logout", nil)
	for _, c := range rec1.Result().Cookies() {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	logout.NewHandler(sm, zap.NewNop()).ServeLogout(rec2, req)

	var cleared bool
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be deleted")
	}

	if len(events) != 2 {
		t.Fatalf("got %d session events, want 2", len(events))
	}
	if events[1].Kind != auth.EventSignedOut || events[1].User.ID != user.ID {
		t.Errorf("sign-out event = %+v", events[1])
	}
}
