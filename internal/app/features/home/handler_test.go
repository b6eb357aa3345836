package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestHome_SignedOutGoesToLogin(t *testing.T) {
	h := NewHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHome(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestHome_SignedInGoesToDashboard(t *testing.T) {
	h := NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Role: "ADMIN"})
	rec := httptest.NewRecorder()
	h.ServeHome(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}
