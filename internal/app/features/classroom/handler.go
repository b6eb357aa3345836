// internal/app/features/classroom/handler.go

// Package classroom shows the assignments handed out across all
// cohorts, with grading progress per assignment.
package classroom

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

const basePath = "/classroom"

const fetchLimit = "1000"

// Handler handles the classroom screens.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	loader *table.Loader[models.Assignment]
}

// NewHandler creates a new classroom handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.Assignment, table.Pagination, error) {
		return backend.List[models.Assignment](ctx, api, "/api/admin/assignments", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "classroom",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
		},
		SortColumns: []string{"title", "dueDate"},
		DefaultSort: table.Sort{Column: "dueDate", Desc: true},
	}
}

func engine() table.Engine[models.Assignment] {
	return table.Engine[models.Assignment]{
		Field: func(a models.Assignment, field string) string {
			switch field {
			case "title":
				return a.Title
			case "course":
				return a.CohortCourse.Title
			case "cohort":
				return a.CohortCourse.Cohort.Name
			case "dueDate":
				return a.DueDate
			}
			return ""
		},
		SearchFields: []string{"title", "course", "cohort"},
		Less: func(a, b models.Assignment, column string) bool {
			switch column {
			case "title":
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			case "dueDate":
				// ISO dates order lexically.
				return a.DueDate < b.DueDate
			}
			return false
		},
	}
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}
