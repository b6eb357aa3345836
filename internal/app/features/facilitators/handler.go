// internal/app/features/facilitators/handler.go
package facilitators

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

const basePath = "/facilitators"

const fetchLimit = "1000"

// Handler handles the facilitator management screens.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	loader *table.Loader[models.Facilitator]
}

// NewHandler creates a new facilitators handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.Facilitator, table.Pagination, error) {
		return backend.List[models.Facilitator](ctx, api, "/api/facilitators", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "facilitators",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
		},
		SortColumns: []string{"name"},
		DefaultSort: table.Sort{Column: "name"},
	}
}

func engine() table.Engine[models.Facilitator] {
	return table.Engine[models.Facilitator]{
		Field: func(f models.Facilitator, field string) string {
			switch field {
			case "name":
				return f.Name
			case "email":
				return f.Email
			}
			return ""
		},
		SearchFields: []string{"name", "email"},
		Less: func(a, b models.Facilitator, column string) bool {
			if column == "name" {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}
			return false
		},
	}
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}
