package courseweeks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/testutil"
	"go.uber.org/zap"
)

func weekFixtures() []models.CourseWeek {
	return []models.CourseWeek{
		{ID: "w1", Title: "Week one", CourseID: "c1", IsPublished: true, CreatedAt: "2024-01-01T00:00:00Z",
			Modules: []models.CourseModule{{ID: "m1", Title: "Intro video"}}},
		{ID: "w2", Title: "Week two", CourseID: "c1", CreatedAt: "2024-01-08T00:00:00Z"},
		{ID: "w3", Title: "Capstone", CourseID: "c1", IsPublished: true, CreatedAt: "2024-01-15T00:00:00Z"},
	}
}

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	api.RespondJSON("GET /api/courses/c1", testutil.DataEnvelope(models.Course{ID: "c1", Title: "Data Analytics"}))
	api.RespondJSON("GET /api/courses/c1/weeks", testutil.ListEnvelope("weeks", weekFixtures(), 1, 1000, 3))
	return NewHandler(api.Client(), zap.NewNop()), api
}

func listRequest(target string) *http.Request {
	req := testutil.AsAdmin(httptest.NewRequest("GET", target, nil))
	return testutil.WithChiURLParam(req, "id", "c1")
}

func TestBuildList_SearchAndStateFilter(t *testing.T) {
	h, _ := newTestHandler(t)

	data, ok := h.buildList(httptest.NewRecorder(), listRequest("/courses/c1/weeks?search=week"))
	if !ok {
		t.Fatal("buildList wrote an error page")
	}
	if len(data.Weeks) != 2 {
		t.Fatalf("search rows = %d, want 2", len(data.Weeks))
	}

	data, _ = h.buildList(httptest.NewRecorder(), listRequest("/courses/c1/weeks?state=draft"))
	if len(data.Weeks) != 1 || data.Weeks[0].ID != "w2" {
		t.Errorf("draft rows = %+v, want just w2", data.Weeks)
	}
}

func TestBuildList_DefaultCurriculumOrder(t *testing.T) {
	h, _ := newTestHandler(t)

	data, _ := h.buildList(httptest.NewRecorder(), listRequest("/courses/c1/weeks"))
	if len(data.Weeks) != 3 {
		t.Fatalf("rows = %d, want 3", len(data.Weeks))
	}
	if data.Weeks[0].ID != "w1" || data.Weeks[2].ID != "w3" {
		t.Errorf("order = %s..%s, want oldest week first", data.Weeks[0].ID, data.Weeks[2].ID)
	}
	if data.Course.Title != "Data Analytics" {
		t.Errorf("course title = %q", data.Course.Title)
	}
}

func TestBuildList_FetchErrorShowsRetry(t *testing.T) {
	h, api := newTestHandler(t)
	api.RespondStatus("GET /api/courses/c1/weeks", http.StatusInternalServerError)

	data, ok := h.buildList(httptest.NewRecorder(), listRequest("/courses/c1/weeks?search=week"))
	if !ok {
		t.Fatal("buildList wrote an error page")
	}
	if data.FetchError == "" {
		t.Error("fetch failure produced no error banner")
	}
	if !strings.HasPrefix(data.RetryURL, "/courses/c1/weeks?") || !strings.Contains(data.RetryURL, "search=week") {
		t.Errorf("retry url = %q, want the same envelope", data.RetryURL)
	}
	if len(data.Weeks) != 0 {
		t.Errorf("fetch failure still produced %d rows", len(data.Weeks))
	}
}

func TestHandleCreate_RequiresTitle(t *testing.T) {
	h, api := newTestHandler(t)

	req := testutil.AsAdmin(testutil.FormRequest("/courses/c1/weeks", "title=++"))
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		h.HandleCreate(rec, req)
	}()

	for _, p := range api.Requests {
		if p == "POST /api/courses/c1/weeks" {
			t.Fatal("blank title reached the platform API")
		}
	}
}

func TestHandleCreate_RedirectsToNewWeek(t *testing.T) {
	h, api := newTestHandler(t)

	var posted struct {
		Title string `json:"title"`
	}
	api.Handle("POST /api/courses/c1/weeks", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&posted)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutil.DataEnvelope(models.CourseWeek{ID: "w9", Title: posted.Title, CourseID: "c1"}))
	})

	req := testutil.AsAdmin(testutil.FormRequest("/courses/c1/weeks", "title=Week+four"))
	req = testutil.WithChiURLParam(req, "id", "c1")
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if posted.Title != "Week four" {
		t.Errorf("posted title = %q", posted.Title)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/courses/c1/weeks/w9?msg=Week+created." {
		t.Errorf("redirect = %q", loc)
	}
}

func TestBuildWeek_LoadsModules(t *testing.T) {
	h, api := newTestHandler(t)
	api.RespondJSON("GET /api/courses/c1/weeks/w1", testutil.DataEnvelope(weekFixtures()[0]))
	api.RespondJSON("GET /api/courses/c1/weeks/w1/modules", testutil.ListEnvelope("modules", []models.CourseModule{
		{ID: "m1", Title: "Intro video"},
		{ID: "m2", Title: "Worksheet"},
	}, 1, 100, 2))

	req := testutil.AsAdmin(httptest.NewRequest("GET", "/courses/c1/weeks/w1", nil))
	req = testutil.WithChiURLParams(req, map[string]string{"id": "c1", "weekID": "w1"})
	data, ok := h.buildWeek(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("buildWeek wrote an error page")
	}
	if data.Week.ID != "w1" || len(data.Modules) != 2 {
		t.Errorf("week = %s with %d modules, want w1 with 2", data.Week.ID, len(data.Modules))
	}
}

func TestHandleModuleUpdate(t *testing.T) {
	h, api := newTestHandler(t)

	var patched modulePayload
	api.Handle("PATCH /api/courses/c1/weeks/w1/modules/m1", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&patched)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testutil.DataEnvelope(models.CourseModule{ID: "m1", Title: patched.Title}))
	})

	req := testutil.AsAdmin(testutil.FormRequest("/courses/c1/weeks/w1/modules/m1", "title=Intro&description=Watch+first"))
	req = testutil.WithChiURLParams(req, map[string]string{"id": "c1", "weekID": "w1", "moduleID": "m1"})
	rec := httptest.NewRecorder()
	h.HandleModuleUpdate(rec, req)

	if patched.Title != "Intro" || patched.Description != "Watch first" {
		t.Errorf("patched = %+v", patched)
	}
	if loc := rec.Header().Get("Location"); loc != "/courses/c1/weeks/w1?msg=Module+updated." {
		t.Errorf("redirect = %q", loc)
	}
}

func TestHandleDelete_ReturnsToWeeksList(t *testing.T) {
	h, api := newTestHandler(t)
	api.RespondStatus("DELETE /api/courses/c1/weeks/w2", http.StatusNoContent)

	req := testutil.AsAdmin(testutil.FormRequest("/courses/c1/weeks/w2/delete", ""))
	req = testutil.WithChiURLParams(req, map[string]string{"id": "c1", "weekID": "w2"})
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	found := false
	for _, p := range api.Requests {
		if p == "DELETE /api/courses/c1/weeks/w2" {
			found = true
		}
	}
	if !found {
		t.Fatalf("delete never reached the platform API: %v", api.Requests)
	}
	if loc := rec.Header().Get("Location"); loc != "/courses/c1/weeks?msg=Week+deleted." {
		t.Errorf("redirect = %q", loc)
	}
}
