// internal/app/features/users/list.go
package users

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

// ServeList handles GET /users - the paginated user list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if r.URL.Query().Has("clear") {
		h.clearFilters(w, r)
		return
	}

	data := h.buildList(w, r)
	templates.Render(w, r, "users_list", data)
}

// ServeTable handles GET /users/table - just the table and pager,
// swapped in place by the debounced search box.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "users_table", data)
}

// buildList parses the table state from the URL, reconciles the
// persisted role filter, fetches the page from the platform API, and
// assembles the view model.
func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())
	h.syncPersistedFilters(w, r, q)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "users list")
	defer cancel()

	token := auth.Token(r)

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Users", "/dashboard"),
		Search:     q.Text("search"),
		Roles:      q.MultiSelected("role"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	rows, page, err := backend.List[models.User](ctx, h.API, "/api/users", token, q.Encode())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			// Let the error flow decide (redirect through sign-in).
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch users", zap.Error(err))
		data.FetchError = "Could not load users from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	} else {
		q.AdoptPage(page)
		data.Users = rows
	}

	data.Pager = paging.Build(basePath, q)
	data.Headers = sortHeaders(q)
	data.RoleOptions = roleOptions(q)
	data.Courses, data.Cohorts = h.scopeOptions(ctx, token, q)
	return data
}

// syncPersistedFilters makes the persisted role selection survive
// remounts: a bare visit (no query string) rehydrates it from the
// prefs store, while an explicit role parameter overwrites the saved
// value (an empty selection removes it).
func (h *Handler) syncPersistedFilters(w http.ResponseWriter, r *http.Request, q *table.Query) {
	spec := q.Spec()
	raw := r.URL.Query()
	for _, fs := range spec.Filters {
		if !fs.Persist {
			continue
		}
		if len(raw) == 0 {
			if saved := h.Prefs.Get(r, spec.Entity, fs.Name); len(saved) > 0 {
				q.SetFilter(fs.Name, table.MultiSelect(saved))
			}
			continue
		}
		if _, present := raw[fs.Name]; present {
			h.Prefs.Set(w, r, spec.Entity, fs.Name, q.MultiSelected(fs.Name))
		}
	}
}

// clearFilters handles ?clear - one action that drops every active
// filter and the saved selections, then lands on the clean list.
func (h *Handler) clearFilters(w http.ResponseWriter, r *http.Request) {
	spec := tableSpec()
	for _, fs := range spec.Filters {
		if fs.Persist {
			h.Prefs.Remove(w, r, spec.Entity, fs.Name)
		}
	}
	http.Redirect(w, r, basePath, http.StatusSeeOther)
}

func sortHeaders(q *table.Query) []sortHeader {
	labels := []struct{ col, label string }{
		{"name", "Name"},
		{"email", "Email"},
		{"createdAt", "Joined"},
	}
	cur := q.Sort()
	out := make([]sortHeader, 0, len(labels))
	for _, l := range labels {
		desc := cur.Column == l.col && !cur.Desc
		v := q.Encode()
		v.Set("sortBy", l.col)
		if desc {
			v.Set("sortOrder", "desc")
		} else {
			v.Set("sortOrder", "asc")
		}
		out = append(out, sortHeader{
			Column: l.col,
			Label:  l.label,
			URL:    basePath + "?" + v.Encode(),
			Active: cur.Column == l.col,
			Desc:   cur.Column == l.col && cur.Desc,
		})
	}
	return out
}

func roleOptions(q *table.Query) []option {
	selected := table.MultiSelect(q.MultiSelected("role"))
	return []option{
		{Value: models.RoleAdmin, Label: "Admins", Selected: selected.Has(models.RoleAdmin)},
		{Value: models.RoleUser, Label: "Learners", Selected: selected.Has(models.RoleUser)},
	}
}

// scopeOptions loads the course and cohort dropdown choices. These
// are decoration on the filter panel: a failure logs and leaves the
// dropdowns empty rather than failing the page.
func (h *Handler) scopeOptions(ctx context.Context, token string, q *table.Query) (courses, cohorts []option) {
	all := url.Values{"limit": {"100"}}

	cs, _, err := backend.List[models.Course](ctx, h.API, "/api/courses", token, all)
	if err != nil {
		h.Log.Warn("failed to load course filter options", zap.Error(err))
	}
	selCourse := q.Selected("course")
	for _, c := range cs {
		courses = append(courses, option{Value: c.ID, Label: c.Title, Selected: c.ID == selCourse})
	}

	chs, _, err := backend.List[models.Cohort](ctx, h.API, "/api/cohorts", token, all)
	if err != nil {
		h.Log.Warn("failed to load cohort filter options", zap.Error(err))
	}
	selCohort := q.Selected("cohort")
	for _, c := range chs {
		cohorts = append(cohorts, option{Value: c.ID, Label: c.Name, Selected: c.ID == selCohort})
	}
	return courses, cohorts
}
