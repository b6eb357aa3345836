// internal/app/features/payments/list.go
package payments

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/paging"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM

	Payments []models.Payment
	Stats    models.PaymentStats
	Pager    paging.VM

	Search        string
	Status        string
	StatusOptions []string
	HasFilters    bool
	DebounceMS    int

	FetchError string
	RetryURL   string
	Flash      string
}

// ServeList handles GET /payments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data := h.buildList(w, r)
	templates.Render(w, r, "payments_list", data)
}

// ServeTable handles GET /payments/table - the table snippet for the
// debounced search box.
func (h *Handler) ServeTable(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	data := h.buildList(w, r)
	templates.RenderSnippet(w, "payments_table", data)
}

func (h *Handler) buildList(w http.ResponseWriter, r *http.Request) listData {
	q := table.ParseQuery(r, tableSpec())

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "payments list")
	defer cancel()

	token := auth.Token(r)
	spec := tableSpec()

	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Payments", "/dashboard"),
		Search:        q.Text("search"),
		Status:        q.Selected("status"),
		StatusOptions: spec.Filters[1].Options,
		HasFilters:    q.HasFilters(),
		DebounceMS:    int(table.DefaultDebounce / time.Millisecond),
		Flash:         query.Get(r, "msg"),
	}

	rows, page, err := backend.List[models.Payment](ctx, h.API, "/api/payments", token, q.Encode())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return data
		}
		h.Log.Error("failed to fetch payments", zap.Error(err))
		data.FetchError = "Could not load payments from the platform."
		data.RetryURL = basePath + "?" + q.EncodeString()
	} else {
		q.AdoptPage(page)
		data.Payments = rows
	}

	// The stats strip is summary decoration; a failure leaves zeros.
	stats, err := backend.GetJSON[models.PaymentStats](ctx, h.API, "/api/payments/stats", token, nil)
	if err != nil {
		h.Log.Warn("failed to fetch payment stats", zap.Error(err))
	} else {
		data.Stats = stats
	}

	data.Pager = paging.Build(basePath, q)
	return data
}

// HandleStatusChange handles POST /payments/{id}/status - marks a
// payment PAID, PENDING, PARTIAL, or FAILED.
func (h *Handler) HandleStatusChange(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid payment status form", err, "The submitted form could not be read.", basePath)
		return
	}

	status := strings.ToUpper(strings.TrimSpace(r.FormValue("status")))
	valid := false
	for _, s := range tableSpec().Filters[1].Options {
		if s == status {
			valid = true
		}
	}
	if !valid {
		h.ErrLog.LogBadRequest(w, r, "invalid payment status value", nil, "Unknown payment status.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "payment status change")
	defer cancel()

	_, err := backend.PatchJSON[models.Payment](ctx, h.API, "/api/payments/"+id, auth.Token(r), map[string]string{
		"status": status,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("payment status changed", zap.String("payment_id", id), zap.String("status", status))

	env, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		env = url.Values{}
	}
	env.Set("msg", "Payment marked "+status+".")
	http.Redirect(w, r, basePath+"?"+env.Encode(), http.StatusSeeOther)
}
