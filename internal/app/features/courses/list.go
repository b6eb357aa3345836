// internal/app/features/courses/list.go
package courses

import (
	"errors"
	"net/http"
	"time"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
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

type listData struct {
	viewdata.BaseVM

	Courses []models.Course
	Pager   paging.VM

	Search     string
	Published  string
	HasFilters bool
	DebounceMS int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /courses.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "courses_list", data)
}

// ServeTable handles GET /courses/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "courses_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "courses list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Courses", "/dashboard"),
		Search:     q.Text("search"),
		Published:  q.Selected("published"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	if err := h.loader.Load(ctx, allEnvelope()); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch courses", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		// The loader kept the previous rows; show them with a banner.
		data.FetchError = "Could not refresh courses from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	cp := make([]models.Course, len(rows))
	copy(cp, rows)
	data.Courses = engine().Apply(cp, q)
	data.Pager = paging.Build(basePath, q)
	return data
}
