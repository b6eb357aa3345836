// internal/app/features/changerequests/list.go
package changerequests

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

// row is one change request with display labels resolved.
type row struct {
	models.ChangeRequest
	TypeLabel string
	// Pending gates the approve/reject controls.
	Pending bool
}

type listData struct {
	viewdata.BaseVM

	Requests []row
	Pager    paging.VM

	Search     string
	Type       string
	Status     string
	HasFilters bool
	DebounceMS int

	// RejectErrorID marks the row whose reject form failed
	// validation; RejectError is the inline message shown next to
	// its reason field.
	RejectErrorID string
	RejectError   string

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /change-requests.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "changerequests_list", data)
}

// ServeTable handles GET /change-requests/table.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "changerequests_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "change requests list")
	defer cancel()

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Change requests", "/dashboard"),
		Search:     q.Text("search"),
		Type:       q.Selected("type"),
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
		h.Log.Error("failed to fetch change requests", zap.Error(err))
	}

	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed {
		data.FetchError = "Could not refresh change requests from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	}

	cp := make([]models.ChangeRequest, len(rows))
	copy(cp, rows)
	visible := engine().Apply(cp, q)

	data.Requests = make([]row, 0, len(visible))
	for _, cr := range visible {
		data.Requests = append(data.Requests, row{
			ChangeRequest: cr,
			TypeLabel:     typeLabel(cr.Type),
			Pending:       cr.Status == models.RequestPending,
		})
	}
	data.Pager = paging.Build(basePath, q)
	return data
}
