// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"net/url"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler handles the admin landing page.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler creates a new dashboard handler.
func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
	}
}

type pageData struct {
	viewdata.BaseVM

	Summary        models.SalesSummary
	RecentPayments []models.Payment
	StatsError     bool
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard stats")
	defer cancel()

	token := auth.Token(r)
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
	}

	summary, err := backend.GetJSON[models.SalesSummary](ctx, h.API, "/api/sales/summary", token, nil)
	if err != nil {
		// The landing page still renders without numbers.
		h.Log.Warn("failed to fetch sales summary", zap.Error(err))
		data.StatsError = true
	} else {
		data.Summary = summary
	}

	recent, _, err := backend.List[models.Payment](ctx, h.API, "/api/payments", token, recentEnvelope())
	if err != nil {
		h.Log.Warn("failed to fetch recent payments", zap.Error(err))
	} else {
		data.RecentPayments = recent
	}

	templates.Render(w, r, "dashboard", data)
}

// recentEnvelope asks for the five newest payments.
func recentEnvelope() url.Values {
	return url.Values{
		"page":      {"1"},
		"limit":     {"5"},
		"sortBy":    {"createdAt"},
		"sortOrder": {"desc"},
	}
}
