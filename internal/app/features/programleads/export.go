// internal/app/features/programleads/export.go
package programleads

import (
	"errors"
	"net/http"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/csvutil"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// exportColumns drives both the CSV header row and the cell rendering.
// Fields without a Cell come straight from the engine's Field lookup.
func exportColumns() []table.Column[models.ProgramLead] {
	return []table.Column[models.ProgramLead]{
		{Key: "name", Header: "Name"},
		{Key: "email", Header: "Email"},
		{Key: "phone", Header: "Phone", Cell: func(l models.ProgramLead) string { return l.PhoneNumber }},
		{Key: "program", Header: "Program"},
		{Key: "source", Header: "Source", Cell: func(l models.ProgramLead) string { return l.Source }},
		{Key: "createdAt", Header: "Captured"},
	}
}

// ServeExport handles GET /program-leads/export - streams the
// currently filtered lead set (all pages, not just the visible one)
// as a CSV download.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	q := table.ParseQuery(r, tableSpec())
	h.syncPersistedFilters(w, r, q)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "program leads export")
	defer cancel()

	if err := h.loader.Load(ctx, allEnvelope()); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return
		}
	}
	rows, _, state, _ := h.loader.Snapshot()
	if state == table.Failed && len(rows) == 0 {
		h.ErrLog.LogServerError(w, r, "program leads export fetch failed", nil,
			"Could not load leads from the platform.", basePath)
		return
	}

	cp := make([]models.ProgramLead, len(rows))
	copy(cp, rows)
	leads := engine().Filtered(cp, q)

	filename := uuid.NewString() + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cols := exportColumns()
	err := csvutil.ExportTable(w, table.Headers(cols), table.RenderRows(leads, cols, engine().Field))
	if err != nil {
		// Headers are already out; all we can do is log.
		h.Log.Error("program leads export write failed", zap.Error(err))
		return
	}

	h.Log.Info("program leads exported",
		zap.Int("rows", len(leads)),
		zap.String("file", filename))
}
