// internal/app/features/courseweeks/actions.go
package courseweeks

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type titlePayload struct {
	Title string `json:"title"`
}

type modulePayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// HandleCreate handles POST /courses/{id}/weeks - the add-week dialog
// on the weeks list.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid week form", err, "The submitted form could not be read.", basePath(courseID))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		data, ok := h.buildList(w, r)
		if !ok {
			return
		}
		data.CreateError = "A week title is required."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "weeks_list", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "week create")
	defer cancel()

	created, err := backend.PostJSON[models.CourseWeek](ctx, h.API, "/api/courses/"+courseID+"/weeks", auth.Token(r), titlePayload{Title: title})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID))
		return
	}

	h.Log.Info("course week created", zap.String("course_id", courseID), zap.String("week_id", created.ID))
	http.Redirect(w, r, basePath(courseID)+"/"+created.ID+"?msg=Week+created.", http.StatusSeeOther)
}

type weekData struct {
	viewdata.BaseVM

	Course  models.Course
	Week    models.CourseWeek
	Modules []models.CourseModule

	// Inline errors for the two forms on the page.
	TitleError  string
	ModuleError string

	Flash string
}

// ServeEdit handles GET /courses/{id}/weeks/{weekID} - the week
// authoring page: title form, module list, add-module form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data, ok := h.buildWeek(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "week_edit", data)
}

// buildWeek loads the week and its modules. A false return means an
// error page has already been written.
func (h *Handler) buildWeek(w http.ResponseWriter, r *http.Request) (weekData, bool) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "week load")
	defer cancel()

	token := auth.Token(r)

	week, err := backend.GetJSON[models.CourseWeek](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID, token, nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That week no longer exists.", basePath(courseID))
			return weekData{}, false
		}
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID))
		return weekData{}, false
	}

	course, err := backend.GetJSON[models.Course](ctx, h.API, "/api/courses/"+courseID, token, nil)
	if err != nil {
		// The week loaded; a missing course title is not worth a 500.
		h.Log.Warn("failed to load course for week page", zap.String("course_id", courseID), zap.Error(err))
	}

	modules, _, err := backend.List[models.CourseModule](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID+"/modules", token, nil)
	if err != nil {
		h.Log.Warn("failed to load week modules", zap.String("week_id", weekID), zap.Error(err))
		modules = week.Modules
	}

	return weekData{
		BaseVM:  viewdata.NewBaseVM(r, week.Title, basePath(courseID)),
		Course:  course,
		Week:    week,
		Modules: modules,
		Flash:   query.Get(r, "msg"),
	}, true
}

// HandleUpdate handles POST /courses/{id}/weeks/{weekID} - renames
// the week.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid week form", err, "The submitted form could not be read.", basePath(courseID))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		data, ok := h.buildWeek(w, r)
		if !ok {
			return
		}
		data.TitleError = "A week title is required."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "week_edit", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "week update")
	defer cancel()

	_, err := backend.PatchJSON[models.CourseWeek](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID, auth.Token(r), titlePayload{Title: title})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID))
		return
	}

	h.Log.Info("course week updated", zap.String("week_id", weekID))
	http.Redirect(w, r, basePath(courseID)+"/"+weekID+"?msg=Week+updated.", http.StatusSeeOther)
}

// HandleDelete handles POST /courses/{id}/weeks/{weekID}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "week delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/courses/"+courseID+"/weeks/"+weekID, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID))
		return
	}

	h.Log.Info("course week deleted", zap.String("week_id", weekID))
	http.Redirect(w, r, basePath(courseID)+"?msg=Week+deleted.", http.StatusSeeOther)
}

// HandleModuleCreate handles POST /courses/{id}/weeks/{weekID}/modules.
func (h *Handler) HandleModuleCreate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid module form", err, "The submitted form could not be read.", basePath(courseID))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		data, ok := h.buildWeek(w, r)
		if !ok {
			return
		}
		data.ModuleError = "A module title is required."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "week_edit", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "module create")
	defer cancel()

	created, err := backend.PostJSON[models.CourseModule](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID+"/modules", auth.Token(r), titlePayload{Title: title})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID))
		return
	}

	h.Log.Info("week module created", zap.String("week_id", weekID), zap.String("module_id", created.ID))
	http.Redirect(w, r, basePath(courseID)+"/"+weekID+"?msg=Module+created.", http.StatusSeeOther)
}

type moduleData struct {
	viewdata.BaseVM

	Week   models.CourseWeek
	Module models.CourseModule

	TitleError string
	Flash      string
}

// ServeModule handles GET /courses/{id}/weeks/{weekID}/modules/{moduleID}.
func (h *Handler) ServeModule(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	data, ok := h.buildModule(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "module_edit", data)
}

func (h *Handler) buildModule(w http.ResponseWriter, r *http.Request) (moduleData, bool) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")
	moduleID := chi.URLParam(r, "moduleID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "module load")
	defer cancel()

	token := auth.Token(r)

	mod, err := backend.GetJSON[models.CourseModule](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID+"/modules/"+moduleID, token, nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That module no longer exists.", basePath(courseID)+"/"+weekID)
			return moduleData{}, false
		}
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID)+"/"+weekID)
		return moduleData{}, false
	}

	week, err := backend.GetJSON[models.CourseWeek](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID, token, nil)
	if err != nil {
		h.Log.Warn("failed to load week for module page", zap.String("week_id", weekID), zap.Error(err))
		// Keep form actions and links working without the week title.
		week = models.CourseWeek{ID: weekID, CourseID: courseID}
	}

	return moduleData{
		BaseVM: viewdata.NewBaseVM(r, mod.Title, basePath(courseID)+"/"+weekID),
		Week:   week,
		Module: mod,
		Flash:  query.Get(r, "msg"),
	}, true
}

// HandleModuleUpdate handles POST /courses/{id}/weeks/{weekID}/modules/{moduleID}.
func (h *Handler) HandleModuleUpdate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")
	moduleID := chi.URLParam(r, "moduleID")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid module form", err, "The submitted form could not be read.", basePath(courseID))
		return
	}

	payload := modulePayload{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if payload.Title == "" {
		data, ok := h.buildModule(w, r)
		if !ok {
			return
		}
		data.TitleError = "A module title is required."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "module_edit", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "module update")
	defer cancel()

	_, err := backend.PatchJSON[models.CourseModule](ctx, h.API, "/api/courses/"+courseID+"/weeks/"+weekID+"/modules/"+moduleID, auth.Token(r), payload)
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID)+"/"+weekID)
		return
	}

	h.Log.Info("week module updated", zap.String("module_id", moduleID))
	http.Redirect(w, r, basePath(courseID)+"/"+weekID+"?msg=Module+updated.", http.StatusSeeOther)
}

// HandleModuleDelete handles POST /courses/{id}/weeks/{weekID}/modules/{moduleID}/delete.
func (h *Handler) HandleModuleDelete(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")
	weekID := chi.URLParam(r, "weekID")
	moduleID := chi.URLParam(r, "moduleID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "module delete")
	defer cancel()

	if err := h.API.Delete(ctx, "/api/courses/"+courseID+"/weeks/"+weekID+"/modules/"+moduleID, auth.Token(r)); err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath(courseID)+"/"+weekID)
		return
	}

	h.Log.Info("week module deleted", zap.String("module_id", moduleID))
	http.Redirect(w, r, basePath(courseID)+"/"+weekID+"?msg=Module+deleted.", http.StatusSeeOther)
}
