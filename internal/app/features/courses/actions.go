// internal/app/features/courses/actions.go
package courses

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

// coursePayload is the create/update body for POST|PATCH /api/courses.
type coursePayload struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Duration        string `json:"course_duration,omitempty"`
	InstructorName  string `json:"course_instructor_name,omitempty"`
	InstructorTitle string `json:"course_instructor_title,omitempty"`
}

func payloadFromForm(r *http.Request) coursePayload {
	return coursePayload{
		Title:           strings.TrimSpace(r.FormValue("title")),
		Description:     strings.TrimSpace(r.FormValue("description")),
		Price:           strings.TrimSpace(r.FormValue("price")),
		Duration:        strings.TrimSpace(r.FormValue("duration")),
		InstructorName:  strings.TrimSpace(r.FormValue("instructor_name")),
		InstructorTitle: strings.TrimSpace(r.FormValue("instructor_title")),
	}
}

// HandleCreate handles POST /courses.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid course form", err, "The submitted form could not be read.", basePath)
		return
	}
	payload := payloadFromForm(r)
	if payload.Title == "" {
		h.renderForm(w, r, models.Course{}, "Title is required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "course create")
	defer cancel()

	created, err := backend.PostJSON[models.Course](ctx, h.API, "/api/courses", auth.Token(r), payload)
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("course created", zap.String("course_id", created.ID), zap.String("title", created.Title))
	h.redirectBack(w, r, "Course created.")
}

// HandleUpdate handles POST /courses/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid course form", err, "The submitted form could not be read.", basePath)
		return
	}
	payload := payloadFromForm(r)
	if payload.Title == "" {
		h.renderForm(w, r, models.Course{ID: id}, "Title is required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "course update")
	defer cancel()

	_, err := backend.PatchJSON[models.Course](ctx, h.API, "/api/courses/"+id, auth.Token(r), payload)
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("course updated", zap.String("course_id", id))
	h.redirectBack(w, r, "Course updated.")
}

// HandlePublishToggle handles POST /courses/{id}/publish.
func (h *Handler) HandlePublishToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid publish form", err, "The submitted form could not be read.", basePath)
		return
	}
	publish := r.FormValue("published") == "true"

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "course publish toggle")
	defer cancel()

	_, err := backend.PatchJSON[models.Course](ctx, h.API, "/api/courses/"+id, auth.Token(r), map[string]bool{
		"isPublished": publish,
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	msg := "Course unpublished."
	if publish {
		msg = "Course published."
	}
	h.Log.Info("course publish toggled", zap.String("course_id", id), zap.Bool("published", publish))
	h.redirectBack(w, r, msg)
}

// HandleDelete handles POST /courses/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid delete form", err, "The submitted form could not be read.", basePath)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "course delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/courses/"+id, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("course deleted", zap.String("course_id", id))
	h.redirectBack(w, r, "Course deleted.")
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
