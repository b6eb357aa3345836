// internal/app/features/courseweeks/list.go
package courseweeks

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/paging"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM

	Course models.Course
	Weeks  []models.CourseWeek
	Pager  paging.VM

	Search     string
	State      string
	HasFilters bool
	DebounceMS int

	// CreateError re-renders the add-week dialog inline.
	CreateError string

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /courses/{id}/weeks.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data, ok := h.buildList(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "weeks_list", data)
}

// ServeTable handles GET /courses/{id}/weeks/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data, ok := h.buildList(w, r)
	if !ok {
		return
	}
	templates.RenderSnippet(w, "weeks_table", data)
}

// buildList loads the course and its weeks. A false return means an
// error page has already been written.
func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) (listData, bool) {
	courseID := chi.URLParam(r, "id")
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "course weeks list")
	defer cancel()

	token := auth.Token(r)

	course, err := backend.GetJSON[models.Course](ctx, h.API, "/api/courses/"+courseID, token, nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That course no longer exists.", "/courses")
			return listData{}, false
		}
		h.ErrLog.HandleAPIError(w, r, err, "/courses")
		return listData{}, false
	}

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, course.Title+" · Weeks", "/courses"),
		Course:     course,
		Search:     q.Text("search"),
		State:      q.Selected("state"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	weeks, _, err := backend.List[models.CourseWeek](ctx, h.API, "/api/courses/"+courseID+"/weeks", token, url.Values{"limit": {fetchLimit}})
	if err != nil {
		h.Log.Error("failed to fetch course weeks", zap.String("course_id", courseID), zap.Error(err))
		data.FetchError = "Could not load the curriculum from the platform."
		data.RetryURL = basePath(courseID) + "?" + q.EncodeString()
		data.Pager = paging.Build(basePath(courseID), q)
		return data, true
	}

	data.Weeks = engine().Apply(weeks, q)
	data.Pager = paging.Build(basePath(courseID), q)
	return data, true
}
