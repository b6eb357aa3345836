// internal/app/features/blogs/handler.go
package blogs

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

const basePath = "/blogs"

const fetchLimit = "1000"

// Handler handles the blog management screens. Post content is
// backend-authored HTML; everything shown in previews goes through
// the sanitizer first.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	loader *table.Loader[models.Blog]
}

// NewHandler creates a new blogs handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.Blog, table.Pagination, error) {
		return backend.List[models.Blog](ctx, api, "/api/blogs", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "blogs",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
		},
		SortColumns: []string{"title", "createdAt"},
		DefaultSort: table.Sort{Column: "createdAt", Desc: true},
	}
}

func engine() table.Engine[models.Blog] {
	return table.Engine[models.Blog]{
		Field: func(b models.Blog, field string) string {
			if field == "title" {
				return b.Title
			}
			return ""
		},
		SearchFields: []string{"title"},
		Less: func(a, b models.Blog, column string) bool {
			switch column {
			case "title":
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			case "createdAt":
				return a.CreatedAt < b.CreatedAt
			}
			return false
		},
	}
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}
