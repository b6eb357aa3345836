// internal/app/features/courses/handler.go
package courses

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"go.uber.org/zap"
)

const basePath = "/courses"

// fetchLimit is how many rows the catalogue fetch asks for. The
// course catalogue is small; filtering and paging happen locally.
const fetchLimit = "1000"

// Handler handles the course management screens. The backend's course
// endpoint does not paginate, so the whole catalogue is fetched and
// the table engine filters, sorts, and pages it in memory.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	loader *table.Loader[models.Course]
}

// NewHandler creates a new courses handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.Course, table.Pagination, error) {
		return backend.List[models.Course](ctx, api, "/api/courses", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "courses",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "published", Kind: table.KindSelect, Options: []string{"published", "draft"}},
		},
		SortColumns: []string{"title", "price"},
		DefaultSort: table.Sort{Column: "title"},
	}
}

func engine() table.Engine[models.Course] {
	return table.Engine[models.Course]{
		Field: func(c models.Course, field string) string {
			switch field {
			case "title":
				return c.Title
			case "instructor":
				return c.InstructorName
			case "published":
				if c.IsPublished {
					return "published"
				}
				return "draft"
			}
			return ""
		},
		SearchFields: []string{"title", "instructor"},
		Less: func(a, b models.Course, column string) bool {
			switch column {
			case "title":
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			case "price":
				return priceValue(a.Price) < priceValue(b.Price)
			}
			return false
		},
	}
}

// priceValue parses the backend's string-typed price for ordering.
// Unparseable prices sort first.
func priceValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}
