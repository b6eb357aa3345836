// internal/app/features/payments/handler.go
package payments

import (
	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"go.uber.org/zap"
)

const basePath = "/payments"

// Handler handles the payments screens.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler creates a new payments handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
}

func tableSpec() table.Spec {
	return table.Spec{
		Entity: "payments",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "status", Kind: table.KindSelect, Options: []string{
				models.PaymentPaid, models.PaymentPending, models.PaymentPartial, models.PaymentFailed,
			}},
		},
		SortColumns: []string{"amount", "createdAt"},
		DefaultSort: table.Sort{Column: "createdAt", Desc: true},
	}
}
