package authgoogle

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/testutil"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	api := testutil.NewFakeAPI(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	codec := securecookie.New([]byte("0123456789abcdef0123456789abcdef"), nil)
	return NewHandler(api.Client(), sm, uierrors.NewErrorLogger(zap.NewNop()), codec,
		"client-id", "client-secret", "https://admin.example.com/", zap.NewNop())
}

func TestServeLogin_RedirectsToGoogleConsent(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google?return=/users", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	if loc.Host != "accounts.google.com" {
		t.Errorf("redirect host = %q, want accounts.google.com", loc.Host)
	}
	if got := loc.Query().Get("redirect_uri"); got != "https://admin.example.com/auth/google/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatal("consent URL has no state parameter")
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no state cookie set")
	}
	var payload statePayload
	if err := h.Codec.Decode(stateCookie, cookie.Value, &payload); err != nil {
		t.Fatalf("decode state cookie: %v", err)
	}
	if payload.State != state {
		t.Errorf("cookie state %q does not match consent-URL state %q", payload.State, state)
	}
	if payload.ReturnURL != "/users" {
		t.Errorf("cookie return URL = %q, want /users", payload.ReturnURL)
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t)
	h.ClientID = ""
	h.ClientSecret = ""

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=google_not_configured" {
		t.Errorf("Location = %q", loc)
	}
}

func TestServeCallback_MissingStateCookie(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc&code=xyz", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=oauth_state" {
		t.Errorf("Location = %q", loc)
	}
}

func TestServeCallback_StateMismatch(t *testing.T) {
	h := newTestHandler(t)

	encoded, err := h.Codec.Encode(stateCookie, statePayload{State: "expected"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: encoded})
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=oauth_state" {
		t.Errorf("Location = %q", loc)
	}
}

func TestServeCallback_UserCancelled(t *testing.T) {
	h := newTestHandler(t)

	encoded, err := h.Codec.Encode(stateCookie, statePayload{State: "abc"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Google redirects back without a code when the user denies consent.
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: encoded})
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	// The state cookie must be cleared either way.
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("state cookie was not cleared")
	}
}

func TestGenerateState_Unique(t *testing.T) {
	a, err := generateState()
	if err != nil {
		t.Fatalf("generateState: %v", err)
	}
	b, err := generateState()
	if err != nil {
		t.Fatalf("generateState: %v", err)
	}
	if a == b {
		t.Error("two generated states are identical")
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("state %q is not URL-safe", a)
	}
}
