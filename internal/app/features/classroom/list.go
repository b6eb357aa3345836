// internal/app/features/classroom/list.go
package classroom

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

// stats summarizes grading progress across every assignment, filtered
// or not.
type stats struct {
	Assignments int
	Submissions int
	Pending     int
	Graded      int
}

// row is one assignment plus its per-assignment grading tallies.
type row struct {
	models.Assignment
	Pending int
	Graded  int
}

type listData struct {
	viewdata.BaseVM

	Assignments []row
	Stats       stats
	Pager       paging.VM

	Search     string
	HasFilters bool
	DebounceMS int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /classroom.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "classroom_list", data)
}

// ServeTable handles GET /classroom/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "classroom_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "classroom list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Classroom", "/dashboard"),
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
		h.Log.Error("failed to fetch assignments", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		data.FetchError = "Could not refresh assignments from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	data.Stats = tally(rows)

	cp := make([]models.Assignment, len(rows))
	copy(cp, rows)
	visible := engine().Apply(cp, q)

	data.Assignments = make([]row, 0, len(visible))
	for _, a := range visible {
		rw := row{Assignment: a}
		for _, s := range a.Submissions {
			if s.Grade == nil {
				rw.Pending++
			} else {
				rw.Graded++
			}
		}
		data.Assignments = append(data.Assignments, rw)
	}
	data.Pager = paging.Build(basePath, q)
	return data
}

// tally computes the stats strip over the full assignment set, not the
// filtered page. A submission without a grade still needs grading.
func tally(rows []models.Assignment) stats {
	var s stats
	s.Assignments = len(rows)
	for _, a := range rows {
		s.Submissions += a.Count.Submissions
		for _, sub := range a.Submissions {
			if sub.Grade == nil {
				s.Pending++
			} else {
				s.Graded++
			}
		}
	}
	return s
}
