// internal/app/features/programleads/list.go
package programleads

import (
	"errors"
	"net/http"
	"sort"
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

	Leads []models.ProgramLead
	Pager paging.VM

	Search     string
	Program    string
	Programs   []string
	HasFilters bool
	DebounceMS int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /program-leads.
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
	templates.Render(w, r, "programleads_list", data)
}

// ServeTable handles GET /program-leads/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "programleads_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())
	h.syncPersistedFilters(w, r, q)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "program leads list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Program leads", "/dashboard"),
		Search:     q.Text("search"),
		Program:    q.Selected("program"),
		HasFilters: q.HasFilters(),
		DebounceMS: int(table.DefaultDebounce / time.Millisecond),
		Flash:      query.Get(r, "msg"),
	}

	if err := h.loader.Load(ctx, allEnvelope()); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch program leads", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		data.FetchError = "Could not refresh leads from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	data.Programs = programValues(rows)

	cp := make([]models.ProgramLead, len(rows))
	copy(cp, rows)
	data.Leads = engine().Apply(cp, q)
	data.Pager = paging.Build(basePath, q)
	return data
}

// syncPersistedFilters makes the programme selection survive across
// visits: a bare visit rehydrates it from the prefs store, an
// explicit parameter overwrites the saved value (empty removes it).
func (h *Handler) syncPersistedFilters(w http.ResponseWriter, r *http.Request, q *table.Query) {
	spec := q.Spec()
	raw := r.URL.Query()
	for _, fs := range spec.Filters {
		if !fs.Persist {
			continue
		}
		if len(raw) == 0 {
			if saved := h.Prefs.Get(r, spec.Entity, fs.Name); len(saved) > 0 {
				q.SetFilter(fs.Name, table.Select(saved[0]))
			}
			continue
		}
		if _, present := raw[fs.Name]; present {
			var vals []string
			if v := q.Selected(fs.Name); v != "" {
				vals = []string{v}
			}
			h.Prefs.Set(w, r, spec.Entity, fs.Name, vals)
		}
	}
}

func (h *Handler) clearFilters(w http.ResponseWriter, r *http.Request) {
	spec := tableSpec()
	for _, fs := range spec.Filters {
		if fs.Persist {
			h.Prefs.Remove(w, r, spec.Entity, fs.Name)
		}
	}
	http.Redirect(w, r, basePath, http.StatusSeeOther)
}

// programValues returns the distinct programme names present in the
// loaded rows, for the filter dropdown.
func programValues(rows []models.ProgramLead) []string {
	seen := make(map[string]bool, len(rows))
	var out []string
	for _, l := range rows {
		if l.Program == "" || seen[l.Program] {
			continue
		}
		seen[l.Program] = true
		out = append(out, l.Program)
	}
	sort.Strings(out)
	return out
}
