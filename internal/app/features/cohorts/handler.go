// internal/app/features/cohorts/handler.go
package cohorts

import (
	"context"
	"net/url"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"go.uber.org/zap"
)

const basePath = "/cohorts"

const fetchLimit = "1000"

// Handler handles the cohort management screens. Cohorts come back in
// one fetch and are filtered in memory, scoped per course when the
// course filter is set.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	loader *table.Loader[models.Cohort]
}

// NewHandler creates a new cohorts handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.Cohort, table.Pagination, error) {
		return backend.List[models.Cohort](ctx, api, "/api/cohorts", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "cohorts",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "course", Kind: table.KindSelect},
			{Name: "status", Kind: table.KindSelect, Options: []string{"UPCOMING", "ONGOING", "COMPLETED"}},
		},
		SortColumns: []string{"name", "startDate"},
		DefaultSort: table.Sort{Column: "startDate", Desc: true},
	}
}

func engine() table.Engine[models.Cohort] {
	return table.Engine[models.Cohort]{
		Field: func(c models.Cohort, field string) string {
			switch field {
			case "name":
				return c.Name
			case "course":
				return c.CourseID
			case "status":
				return c.Status
			}
			return ""
		},
		SearchFields: []string{"name"},
		Less: func(a, b models.Cohort, column string) bool {
			switch column {
			case "name":
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			case "startDate":
				// ISO dates order lexically.
				return a.StartDate < b.StartDate
			}
			return false
		},
	}
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}
