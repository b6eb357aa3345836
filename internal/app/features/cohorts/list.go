// internal/app/features/cohorts/list.go
package cohorts

import (
	"context"
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
	"go.uber.org/zap"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type listData struct {
	viewdata.BaseVM

	Cohorts []models.Cohort
	Pager   paging.VM

	// CourseTitles maps course ids to titles for display.
	CourseTitles map[string]string

	Search        string
	Course        string
	Status        string
	CourseOptions []option
	HasFilters    bool
	DebounceMS    int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /cohorts.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "cohorts_list", data)
}

// ServeTable handles GET /cohorts/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "cohorts_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "cohorts list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Cohorts", "/dashboard"),
		Search:     q.Text("search"),
		Course:     q.Selected("course"),
		Status:     q.Selected("status"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	if err := h.loader.Load(ctx, allEnvelope()); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch cohorts", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		data.FetchError = "Could not refresh cohorts from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	cp := make([]models.Cohort, len(rows))
	copy(cp, rows)
	data.Cohorts = engine().Apply(cp, q)
	data.Pager = paging.Build(basePath, q)
	data.CourseOptions, data.CourseTitles = h.courseIndex(ctx, auth.Token(r), q.Selected("course"))
	return data
}

// courseIndex loads the course dropdown and an id-to-title map for
// row display; failures leave both empty.
func (h *Handler) courseIndex(ctx context.Context, token, selected string) ([]option, map[string]string) {
	courses, _, err := backend.List[models.Course](ctx, h.API, "/api/courses", token, url.Values{"limit": {fetchLimit}})
	if err != nil {
		h.Log.Warn("failed to load course index", zap.Error(err))
		return nil, nil
	}
	opts := make([]option, 0, len(courses))
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		opts = append(opts, option{Value: c.ID, Label: c.Title, Selected: c.ID == selected})
		titles[c.ID] = c.Title
	}
	return opts, titles
}
