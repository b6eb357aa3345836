package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/prefs"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI, *prefs.Memory) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	store := prefs.NewMemory()
	return NewHandler(api.Client(), store, zap.NewNop()), api, store
}

func stubUsers(api *testutil.FakeAPI, rows []models.User, page, limit, total int) *url.Values {
	var got url.Values
	api.Handle("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutil.ListEnvelope("users", rows, page, limit, total))
	})
	api.RespondJSON("GET /api/courses", testutil.ListEnvelope("courses", []models.Course{}, 1, 100, 0))
	api.RespondJSON("GET /api/cohorts", testutil.ListEnvelope("cohorts", []models.Cohort{}, 1, 100, 0))
	return &got
}

func sampleUsers(n int) []models.User {
	out := make([]models.User, n)
	for i := range out {
		out[i] = models.User{ID: "u" + string(rune('a'+i)), Name: "User", Email: "u@example.com", Role: "USER"}
	}
	return out
}

func TestBuildList_ForwardsEnvelope(t *testing.T) {
	h, api, _ := newTestHandler(t)
	got := stubUsers(api, sampleUsers(10), 2, 10, 25)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/users?page=2&limit=10&search=ada&role=ADMIN", nil))
	rec := httptest.NewRecorder()
	data := h.buildList(rec, req)

	if got == nil || len(*got) == 0 {
		t.Fatal("platform API was never called")
	}
	q := *got
	if q.Get("page") != "2" || q.Get("limit") != "10" {
		t.Errorf("page/limit = %s/%s, want 2/10", q.Get("page"), q.Get("limit"))
	}
	if q.Get("search") != "ada" {
		t.Errorf("search = %q, want ada", q.Get("search"))
	}
	if q.Get("role") != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", q.Get("role"))
	}
	if len(data.Users) != 10 {
		t.Errorf("got %d rows, want 10", len(data.Users))
	}
	if data.Pager.Page != 2 || data.Pager.Total != 25 || data.Pager.TotalPages != 3 {
		t.Errorf("pager = page %d, total %d, pages %d", data.Pager.Page, data.Pager.Total, data.Pager.TotalPages)
	}
	if data.Pager.Showing != "Showing 11 to 20 of 25" {
		t.Errorf("Showing = %q", data.Pager.Showing)
	}
}

func TestBuildList_DefaultSortInEnvelope(t *testing.T) {
	h, api, _ := newTestHandler(t)
	got := stubUsers(api, nil, 1, 10, 0)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/users", nil))
	h.buildList(httptest.NewRecorder(), req)

	q := *got
	if q.Get("sortBy") != "createdAt" || q.Get("sortOrder") != "desc" {
		t.Errorf("sort = %s %s, want createdAt desc", q.Get("sortBy"), q.Get("sortOrder"))
	}
}

func TestBuildList_PersistedRoleFilterRehydrates(t *testing.T) {
	h, api, store := newTestHandler(t)
	got := stubUsers(api, nil, 1, 10, 0)

	// First visit selects a role filter explicitly: it is both applied
	// and saved.
	req := testutil.AsAdmin(httptest.NewRequest("GET", "/users?role=ADMIN", nil))
	h.buildList(httptest.NewRecorder(), req)
	if saved := store.Get(req, "users", "role"); len(saved) != 1 || saved[0] != "ADMIN" {
		t.Fatalf("saved role filter = %v, want [ADMIN]", saved)
	}

	// A later bare visit (a fresh mount) restores the selection.
	req = testutil.AsAdmin(httptest.NewRequest("GET", "/users", nil))
	h.buildList(httptest.NewRecorder(), req)
	if (*got).Get("role") != "ADMIN" {
		t.Errorf("rehydrated envelope role = %q, want ADMIN", (*got).Get("role"))
	}

	// Explicitly clearing the selection removes the saved value.
	req = testutil.AsAdmin(httptest.NewRequest("GET", "/users?role=", nil))
	h.buildList(httptest.NewRecorder(), req)
	if saved := store.Get(req, "users", "role"); len(saved) != 0 {
		t.Errorf("saved role filter after clearing = %v, want empty", saved)
	}
}

func TestServeList_ClearResetsFiltersAndPrefs(t *testing.T) {
	h, _, store := newTestHandler(t)

	seed := testutil.AsAdmin(httptest.NewRequest("GET", "/users", nil))
	store.Set(nil, seed, "users", "role", []string{"ADMIN"})

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/users?clear=1&role=ADMIN&search=x", nil))
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/users" {
		t.Errorf("Location = %q, want /users", loc)
	}
	if saved := store.Get(seed, "users", "role"); len(saved) != 0 {
		t.Errorf("saved role filter survived clear: %v", saved)
	}
}

func TestBuildList_FetchErrorKeepsPageAndOffersRetry(t *testing.T) {
	h, api, _ := newTestHandler(t)
	api.RespondStatus("GET /api/users", http.StatusInternalServerError)
	api.RespondStatus("GET /api/courses", http.StatusInternalServerError)
	api.RespondStatus("GET /api/cohorts", http.StatusInternalServerError)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/users?page=2&limit=10&search=ada", nil))
	data := h.buildList(httptest.NewRecorder(), req)

	if data.FetchError == "" {
		t.Fatal("expected a fetch error banner")
	}
	// The retry link re-issues the identical envelope.
	wantEnv := "limit=10&page=2&search=ada&sortBy=createdAt&sortOrder=desc"
	if data.RetryURL != "/users?"+wantEnv {
		t.Errorf("RetryURL = %q, want %q", data.RetryURL, "/users?"+wantEnv)
	}
}

func TestBuildList_ExpiredTokenRedirectsToLogin(t *testing.T) {
	h, api, _ := newTestHandler(t)
	api.RespondStatus("GET /api/users", http.StatusUnauthorized)

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/users", nil))
	rec := httptest.NewRecorder()
	h.buildList(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("Location = %q, want a /login redirect", loc)
	}
}

func TestHandleRoleChange(t *testing.T) {
	h, api, _ := newTestHandler(t)

	var patched map[string]string
	api.Handle("PATCH /api/users/u1", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&patched)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutil.DataEnvelope(models.User{ID: "u1", Role: "ADMIN"}))
	})

	req := testutil.AsAdmin(testutil.FormRequest("/users/u1/role", "role=admin&return=page%3D2%26limit%3D10"))
	req = testutil.WithChiURLParam(req, "id", "u1")
	rec := httptest.NewRecorder()
	h.HandleRoleChange(rec, req)

	if patched["role"] != "ADMIN" {
		t.Errorf("patched role = %q, want ADMIN (normalized)", patched["role"])
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	if loc.Path != "/users" {
		t.Errorf("redirect path = %q", loc.Path)
	}
	if loc.Query().Get("page") != "2" || loc.Query().Get("limit") != "10" {
		t.Errorf("redirect lost the envelope: %q", loc.RawQuery)
	}
	if loc.Query().Get("msg") == "" {
		t.Error("redirect carries no confirmation message")
	}
}

func TestHandleDelete(t *testing.T) {
	h, api, _ := newTestHandler(t)

	deleted := false
	api.Handle("DELETE /api/users/u9", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := testutil.AsAdmin(testutil.FormRequest("/users/u9/delete", "return="))
	req = testutil.WithChiURLParam(req, "id", "u9")
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if !deleted {
		t.Error("platform delete endpoint was never called")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

func TestHandleStatusToggle_Deactivate(t *testing.T) {
	h, api, _ := newTestHandler(t)

	var patched map[string]bool
	api.Handle("PATCH /api/users/u2", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&patched)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutil.DataEnvelope(models.User{ID: "u2", Inactive: true}))
	})

	req := testutil.AsAdmin(testutil.FormRequest("/users/u2/status", "inactive=true&return="))
	req = testutil.WithChiURLParam(req, "id", "u2")
	rec := httptest.NewRecorder()
	h.HandleStatusToggle(rec, req)

	if !patched["inactive"] {
		t.Error("patch did not set inactive=true")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}
