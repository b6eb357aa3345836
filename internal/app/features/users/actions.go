// internal/app/features/users/actions.go
package users

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleRoleChange handles POST /users/{id}/role - promotes or demotes
// an account.
func (h *Handler) HandleRoleChange(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid role change form", err, "The submitted form could not be read.", basePath)
		return
	}

	role := strings.ToUpper(strings.TrimSpace(r.FormValue("role")))
	if role != models.RoleAdmin && role != models.RoleUser {
		h.ErrLog.LogBadRequest(w, r, "invalid role value", nil, "Unknown role.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "user role change")
	defer cancel()

	_, err := backend.PatchJSON[models.User](ctx, h.API, "/api/users/"+id, auth.Token(r), map[string]string{
		"role": role,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("user role changed", zap.String("user_id", id), zap.String("role", role))
	h.redirectBack(w, r, "Role updated.")
}

// HandleStatusToggle handles POST /users/{id}/status - deactivates or
// reactivates an account.
func (h *Handler) HandleStatusToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid status form", err, "The submitted form could not be read.", basePath)
		return
	}

	inactive := r.FormValue("inactive") == "true"

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "user status toggle")
	defer cancel()

	_, err := backend.PatchJSON[models.User](ctx, h.API, "/api/users/"+id, auth.Token(r), map[string]bool{
		"inactive": inactive,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	msg := "User reactivated."
	if inactive {
		msg = "User deactivated."
	}
	h.Log.Info("user status changed", zap.String("user_id", id), zap.Bool("inactive", inactive))
	h.redirectBack(w, r, msg)
}

// HandleDelete handles POST /users/{id}/delete. The confirm dialog in
// the list is bound to this exact row ID, so a double-submit against a
// vanished user just lands on the not-found page.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid delete form", err, "The submitted form could not be read.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "user delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/users/"+id, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id))
	h.redirectBack(w, r, "User deleted.")
}

// redirectBack returns to the list with the envelope the action form
// carried, so the same page and filters are showing afterwards.
func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, msg string) {
	env, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		env = url.Values{}
	}
	if msg != "" {
		env.Set("msg", msg)
	}
	dest := basePath
	if len(env) > 0 {
		dest += "?" + env.Encode()
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
