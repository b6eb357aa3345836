// internal/app/features/cohorts/actions.go
package cohorts

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// cohortPayload is the create/update body. Brochure and timetable
// URLs are passed through to the backend untouched.
type cohortPayload struct {
	Name        string `json:"name"`
	CourseID    string `json:"courseId"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	BrochureURL string `json:"brochureUrl,omitempty"`
}

func payloadFromForm(r *http.Request) cohortPayload {
	return cohortPayload{
		Name:        strings.TrimSpace(r.FormValue("name")),
		CourseID:    strings.TrimSpace(r.FormValue("course_id")),
		StartDate:   strings.TrimSpace(r.FormValue("start_date")),
		EndDate:     strings.TrimSpace(r.FormValue("end_date")),
		BrochureURL: strings.TrimSpace(r.FormValue("brochure_url")),
	}
}

type formData struct {
	viewdata.BaseVM

	Cohort  models.Cohort
	Courses []option
	IsEdit  bool
	Error   string
}

// ServeNew handles GET /cohorts/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	h.renderForm(w, r, models.Cohort{CourseID: r.URL.Query().Get("course")}, "")
}

// ServeEdit handles GET /cohorts/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "cohort load")
	defer cancel()

	cohort, err := backend.GetJSON[models.Cohort](ctx, h.API, "/api/cohorts/"+id, auth.Token(r), nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That cohort no longer exists.", basePath)
			return
		}
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}
	h.renderForm(w, r, cohort, "")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, cohort models.Cohort, errMsg string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "cohort form courses")
	defer cancel()
	opts, _ := h.courseIndex(ctx, auth.Token(r), cohort.CourseID)

	title := "New cohort"
	if cohort.ID != "" {
		title = "Edit cohort"
	}
	if errMsg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "cohort_form", formData{
		BaseVM:  viewdata.NewBaseVM(r, title, basePath),
		Cohort:  cohort,
		Courses: opts,
		IsEdit:  cohort.ID != "",
		Error:   errMsg,
	})
}

// HandleCreate handles POST /cohorts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid cohort form", err, "The submitted form could not be read.", basePath)
		return
	}
	payload := payloadFromForm(r)
	if payload.Name == "" || payload.CourseID == "" {
		h.renderForm(w, r, models.Cohort{Name: payload.Name, CourseID: payload.CourseID},
			"Name and course are required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "cohort create")
	defer cancel()

	created, err := backend.PostJSON[models.Cohort](ctx, h.API, "/api/cohorts", auth.Token(r), payload)
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("cohort created", zap.String("cohort_id", created.ID), zap.String("course_id", created.CourseID))
	h.redirectBack(w, r, "Cohort created.")
}

// HandleUpdate handles POST /cohorts/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid cohort form", err, "The submitted form could not be read.", basePath)
		return
	}
	payload := payloadFromForm(r)
	if payload.Name == "" || payload.CourseID == "" {
		h.renderForm(w, r, models.Cohort{ID: id, Name: payload.Name, CourseID: payload.CourseID},
			"Name and course are required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "cohort update")
	defer cancel()

	_, err := backend.PatchJSON[models.Cohort](ctx, h.API, "/api/cohorts/"+id, auth.Token(r), payload)
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("cohort updated", zap.String("cohort_id", id))
	h.redirectBack(w, r, "Cohort updated.")
}

// HandleDelete handles POST /cohorts/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid delete form", err, "The submitted form could not be read.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "cohort delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/cohorts/"+id, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("cohort deleted", zap.String("cohort_id", id))
	h.redirectBack(w, r, "Cohort deleted.")
}

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
