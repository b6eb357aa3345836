// internal/app/features/changerequests/actions.go
package changerequests

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type decisionPayload struct {
	Status      string `json:"status"`
	AdminReason string `json:"adminReason,omitempty"`
}

// HandleApprove handles POST /change-requests/{id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid approve form", err, "The submitted form could not be read.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "change request approve")
	defer cancel()

	_, err := backend.PatchJSON[models.ChangeRequest](ctx, h.API, "/api/change-requests/"+id, auth.Token(r), decisionPayload{
		Status: models.RequestApproved,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("change request approved", zap.String("request_id", id))
	h.redirectBack(w, r, "Request approved.")
}

// HandleReject handles POST /change-requests/{id}/reject. The reason
// is mandatory; an empty one re-renders the list with an inline error
// on the offending row instead of reaching the backend.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid reject form", err, "The submitted form could not be read.", basePath)
		return
	}

	reason := strings.TrimSpace(r.FormValue("reason"))
	if reason == "" {
		data := h.buildList(w, r)
		data.RejectErrorID = id
		data.RejectError = "A reason is required to reject a request."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "changerequests_list", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "change request reject")
	defer cancel()

	_, err := backend.PatchJSON[models.ChangeRequest](ctx, h.API, "/api/change-requests/"+id, auth.Token(r), decisionPayload{
		Status:      models.RequestRejected,
		AdminReason: reason,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("change request rejected", zap.String("request_id", id))
	h.redirectBack(w, r, "Request rejected.")
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, msg string) {
	env, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		env = url.Values{}
	}
	env.Set("msg", msg)
	http.Redirect(w, r, basePath+"?"+env.Encode(), http.StatusSeeOther)
}
