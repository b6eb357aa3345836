// internal/app/features/facilitators/actions.go
package facilitators

import (
	"errors"
	"net/http"
	"net/url"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type assignData struct {
	viewdata.BaseVM

	Facilitator models.Facilitator
	Courses     []courseOption
}

// ServeAssign handles GET /facilitators/{id}/assign - the
// course-assignment form with every course, assigned ones preselected.
func (h *Handler) ServeAssign(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "facilitator load")
	defer cancel()

	token := auth.Token(r)
	fac, err := backend.GetJSON[models.Facilitator](ctx, h.API, "/api/facilitators/"+id, token, nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That facilitator no longer exists.", basePath)
			return
		}
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	opts, err := h.courseOptions(ctx, token, table.NewSelectionFrom(fac.Courses))
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	templates.Render(w, r, "facilitator_assign", assignData{
		BaseVM:      viewdata.NewBaseVM(r, "Assign courses", basePath),
		Facilitator: fac,
		Courses:     opts,
	})
}

// HandleAssign handles POST /facilitators/{id}/assign - replaces the
// facilitator's course assignments with the submitted selection.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid assign form", err, "The submitted form could not be read.", basePath)
		return
	}

	sel := table.NewSelectionFrom(r.Form["courses"])

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "facilitator assign")
	defer cancel()

	token := auth.Token(r)

	// Drop ids that no longer name a course; the form may be stale.
	known, _, err := backend.List[models.Course](ctx, h.API, "/api/courses", token, url.Values{"limit": {fetchLimit}})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}
	valid := make(map[string]struct{}, len(known))
	for _, c := range known {
		valid[c.ID] = struct{}{}
	}
	sel.Retain(valid)

	courses := sel.IDs()
	_, err = backend.PostJSON[models.Facilitator](ctx, h.API, "/api/facilitators/"+id+"/courses", token, map[string]any{
		"courses": courses,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("facilitator courses assigned",
		zap.String("facilitator_id", id),
		zap.Int("count", len(courses)))
	http.Redirect(w, r, basePath+"?msg=Courses+assigned.", http.StatusSeeOther)
}

// HandleDelete handles POST /facilitators/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid delete form", err, "The submitted form could not be read.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "facilitator delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/facilitators/"+id, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("facilitator deleted", zap.String("facilitator_id", id))

	env, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		env = url.Values{}
	}
	env.Set("msg", "Facilitator deleted.")
	http.Redirect(w, r, basePath+"?"+env.Encode(), http.StatusSeeOther)
}
