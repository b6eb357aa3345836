// internal/app/features/changerequests/handler.go
package changerequests

import (
	"context"
	"net/url"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"go.uber.org/zap"
)

const basePath = "/change-requests"

const fetchLimit = "1000"

// Handler handles the change request review screens.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	loader *table.Loader[models.ChangeRequest]
}

// NewHandler creates a new change requests handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
	h.loader = table.NewLoader(func(ctx context.Context, envelope url.Values) ([]models.ChangeRequest, table.Pagination, error) {
		return backend.List[models.ChangeRequest](ctx, api, "/api/change-requests", auth.TokenFromContext(ctx), envelope)
	})
	return h
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "change-requests",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "type", Kind: table.KindSelect, Options: []string{models.ChangeCourse, models.ChangeDeferment}},
			{Name: "status", Kind: table.KindSelect, Options: []string{models.RequestPending, models.RequestApproved, models.RequestRejected}},
		},
		SortColumns: []string{"createdAt"},
		DefaultSort: table.Sort{Column: "createdAt", Desc: true},
	}
}

func engine() table.Engine[models.ChangeRequest] {
	return table.Engine[models.ChangeRequest]{
		Field: func(cr models.ChangeRequest, field string) string {
			switch field {
			case "type":
				return cr.Type
			case "status":
				return cr.Status
			case "name":
				return cr.User.Name
			case "email":
				return cr.User.Email
			case "reason":
				return cr.Reason
			}
			return ""
		},
		SearchFields: []string{"name", "email", "reason"},
		Less: func(a, b models.ChangeRequest, column string) bool {
			if column == "createdAt" {
				return a.CreatedAt < b.CreatedAt
			}
			return false
		},
	}
}

func allEnvelope() url.Values {
	return url.Values{"limit": {fetchLimit}}
}

// typeLabel renders the wire constant as screen text.
func typeLabel(t string) string {
	switch t {
	case models.ChangeCourse:
		return "Course change"
	case models.ChangeDeferment:
		return "Deferment"
	}
	return t
}
