// internal/app/features/courseweeks/handler.go
package courseweeks

import (
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"go.uber.org/zap"
)

const fetchLimit = "1000"

// Handler handles the curriculum authoring screens: the weeks of a
// course and the modules inside each week.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler creates a new course weeks handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
}

// basePath is the weeks listing of one course.
func basePath(courseID string) string {
	return "/courses/" + courseID + "/weeks"
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "course-weeks",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "state", Kind: table.KindSelect, Options: []string{"published", "draft"}},
		},
		SortColumns: []string{"title", "createdAt"},
		DefaultSort: table.Sort{Column: "createdAt"},
	}
}

func engine() table.Engine[models.CourseWeek] {
	return table.Engine[models.CourseWeek]{
		Field: func(wk models.CourseWeek, field string) string {
			switch field {
			case "title":
				return wk.Title
			case "state":
				if wk.IsPublished {
					return "published"
				}
				return "draft"
			case "createdAt":
				return wk.CreatedAt
			}
			return ""
		},
		SearchFields: []string{"title"},
		Less: func(a, b models.CourseWeek, column string) bool {
			switch column {
			case "title":
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			case "createdAt":
				// ISO dates order lexically.
				return a.CreatedAt < b.CreatedAt
			}
			return false
		},
	}
}
