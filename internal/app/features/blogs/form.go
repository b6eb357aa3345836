// internal/app/features/blogs/form.go
package blogs

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/htmlsanitize"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type formData struct {
	viewdata.BaseVM

	Blog  models.Blog
	Error string
}

// ServeEdit handles GET /blogs/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "blog load")
	defer cancel()

	blog, err := backend.GetJSON[models.Blog](ctx, h.API, "/api/blogs/"+id, auth.Token(r), nil)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uierrors.RenderNotFound(w, r, "That post no longer exists.", basePath)
			return
		}
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}
	h.renderForm(w, r, blog, "")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, blog models.Blog, errMsg string) {
	if errMsg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "blog_form", formData{
		BaseVM: viewdata.NewBaseVM(r, "Edit post", basePath),
		Blog:   blog,
		Error:  errMsg,
	})
}

// HandleUpdate handles POST /blogs/{id}. Submitted content is
// sanitized before it is sent on.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid blog form", err, "The submitted form could not be read.", basePath)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := htmlsanitize.Sanitize(r.FormValue("content"))
	if title == "" {
		h.renderForm(w, r, models.Blog{ID: id, Content: content}, "Title is required.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "blog update")
	defer cancel()

	_, err := backend.PatchJSON[models.Blog](ctx, h.API, "/api/blogs/"+id, auth.Token(r), map[string]string{
		"title":     title,
		"content":   content,
		"mins_read": strings.TrimSpace(r.FormValue("mins_read")),
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("blog post updated", zap.String("blog_id", id))
	http.Redirect(w, r, basePath+"?msg=Post+updated.", http.StatusSeeOther)
}
