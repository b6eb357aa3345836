// internal/app/features/facilitators/list.go
package facilitators

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

type courseOption struct {
	Value    string
	Label    string
	Assigned bool
}

// row is one facilitator plus resolved course titles.
type row struct {
	models.Facilitator
	CourseTitles []string
}

type listData struct {
	viewdata.BaseVM

	Facilitators []row
	Pager        paging.VM

	Search     string
	HasFilters bool
	DebounceMS int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /facilitators.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "facilitators_list", data)
}

// ServeTable handles GET /facilitators/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "facilitators_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "facilitators list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Facilitators", "/dashboard"),
		Search:     q.Text("search"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	if err := h.loader.Load(ctx, allEnvelope()); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch facilitators", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		data.FetchError = "Could not refresh facilitators from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	cp := make([]models.Facilitator, len(rows))
	copy(cp, rows)
	visible := engine().Apply(cp, q)

	titles := h.courseTitles(ctx, auth.Token(r))
	data.Facilitators = make([]row, 0, len(visible))
	for _, f := range visible {
		rw := row{Facilitator: f}
		for _, id := range f.Courses {
			if t, ok := titles[id]; ok {
				rw.CourseTitles = append(rw.CourseTitles, t)
			}
		}
		data.Facilitators = append(data.Facilitators, rw)
	}
	data.Pager = paging.Build(basePath, q)
	return data
}

func (h *Handler) courseTitles(ctx context.Context, token string) map[string]string {
	courses, _, err := backend.List[models.Course](ctx, h.API, "/api/courses", token, url.Values{"limit": {fetchLimit}})
	if err != nil {
		h.Log.Warn("failed to load course titles", zap.Error(err))
		return nil
	}
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}
	return titles
}
