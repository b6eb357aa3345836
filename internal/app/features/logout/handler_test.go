package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/logout"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestLogout_RedirectsHome(t *testing.T) {
	sm := newSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, httptest.NewRequest("GET", "/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestLogout_ExpiresSessionCookie(t *testing.T) {
	sm := newSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	// Sign in first so there is a session to clear.
	signRec := httptest.NewRecorder()
	if err := sm.SignIn(signRec, httptest.NewRequest("POST", "/login", nil), &auth.SessionUser{ID: "u1", Role: "ADMIN"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	req := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range signRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	expired := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected session cookie to be expired")
	}
}

func TestLogout_HTMXUsesHXRedirect(t *testing.T) {
	sm := newSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest("GET", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Header().Get("HX-Redirect") != "/" {
		t.Errorf("HX-Redirect = %q, want /", rec.Header().Get("HX-Redirect"))
	}
}
