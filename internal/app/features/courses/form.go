// internal/app/features/courses/form.go
package courses

import (
	"errors"
	"net/http"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type formData struct {
	viewdata.BaseVM

	Course models.Course
	IsEdit bool
	Error  string
}

// ServeNew handles GET /courses/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	h.renderForm(w, r, models.Course{}, "")
}

// ServeEdit handles GET /courses/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "course load")
	defer cancel()

	course, err := backend.GetJSON[models.Course](ctx, h.API, "/api/courses/"+id, auth.Token(r), nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That course no longer exists.", basePath)
			return
		}
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}
	h.renderForm(w, r, course, "")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, course models.Course, errMsg string) {
	title := "New course"
	if course.ID != "" {
		title = "Edit course"
	}
	if errMsg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "course_form", formData{
		BaseVM: viewdata.NewBaseVM(r, title, basePath),
		Course: course,
		IsEdit: course.ID != "",
		Error:  errMsg,
	})
}
