// internal/app/features/programleads/handler.go
package programleads

import (
	"context"
	"net/url"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/prefs"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"go.uber.org/zap"
)

const basePath = "/program-leads"

const fetchLimit = "1000"

// Handler handles the programme lead screens.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Prefs  prefs.Store

	loader *table.Loader[models.ProgramLead]
}

// NewHandler creates a new program leads handler.
func NewHandler(api *backend.Client, store prefs.Store, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
		Prefs:  store,
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.ProgramLead, table.Pagination, error) {
		return backend.List[models.ProgramLead](ctx, api, "/api/program-leads", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

// tableSpec declares the leads list: text search plus a persisted
// programme single-select. Programme values come from the data, so
// the select accepts any value.
func tableSpec() table.Spec {
	return table.Spec{
		Entity: "program-leads",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "program", Kind: table.KindSelect, Persist: true},
		},
		SortColumns: []string{"name", "createdAt"},
		DefaultSort: table.Sort{Column: "createdAt", Desc: true},
	}
}

func engine() table.Engine[models.ProgramLead] {
	return table.Engine[models.ProgramLead]{
		Field: func(l models.ProgramLead, field string) string {
			switch field {
			case "name":
				return l.Name
			case "email":
				return l.Email
			case "program":
				return l.Program
			case "createdAt":
				return l.CreatedAt
			}
			return ""
		},
		SearchFields: []string{"name", "email"},
		Less: func(a, b models.ProgramLead, column string) bool {
			switch column {
			case "name":
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			case "createdAt":
				// ISO-8601 timestamps order lexically.
				return a.CreatedAt < b.CreatedAt
			}
			return false
		},
	}
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}
