// internal/app/features/facilitators/create.go
package facilitators

import (
	"context"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/authz"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type createPayload struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	JobTitle    string   `json:"title,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	CourseIDs   []string `json:"courseIds"`
}

type formData struct {
	viewdata.BaseVM

	Name     string
	Email    string
	Phone    string
	JobTitle string
	Bio      string
	Courses  []courseOption

	Errors map[string]string
}

// ServeNew handles GET /facilitators/new - the blank creation form
// with every course offered as a checkbox.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "facilitator form")
	defer cancel()

	opts, err := h.courseOptions(ctx, auth.Token(r), table.NewSelection())
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	templates.Render(w, r, "facilitator_form", formData{
		BaseVM:  viewdata.NewBaseVM(r, "New facilitator", basePath),
		Courses: opts,
	})
}

// HandleCreate handles POST /facilitators.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid facilitator form", err, "The submitted form could not be read.", basePath)
		return
	}

	form := formData{
		BaseVM:   viewdata.NewBaseVM(r, "New facilitator", basePath),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		JobTitle: strings.TrimSpace(r.FormValue("title")),
		Bio:      strings.TrimSpace(r.FormValue("bio")),
		Errors:   map[string]string{},
	}
	if form.Name == "" {
		form.Errors["name"] = "A name is required."
	}
	if form.Email == "" {
		form.Errors["email"] = "An email address is required."
	} else if _, err := mail.ParseAddress(form.Email); err != nil {
		form.Errors["email"] = "That email address does not look valid."
	}
	if form.Phone == "" {
		form.Errors["phone"] = "A phone number is required."
	}

	sel := table.NewSelectionFrom(r.Form["courses"])

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "facilitator create")
	defer cancel()

	token := auth.Token(r)

	if len(form.Errors) > 0 {
		opts, err := h.courseOptions(ctx, token, sel)
		if err != nil {
			h.ErrLog.HandleAPIError(w, r, err, basePath)
			return
		}
		form.Courses = opts
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "facilitator_form", form)
		return
	}

	created, err := backend.PostJSON[models.Facilitator](ctx, h.API, "/api/facilitators", token, createPayload{
		Name:        form.Name,
		Email:       form.Email,
		PhoneNumber: form.Phone,
		JobTitle:    form.JobTitle,
		Bio:         form.Bio,
		CourseIDs:   sel.IDs(),
	})
	if err != nil {
		h.ErrLog.HandleAPIError(w, r, err, basePath)
		return
	}

	h.Log.Info("facilitator created", zap.String("facilitator_id", created.ID))
	http.Redirect(w, r, basePath+"?msg=Facilitator+created.", http.StatusSeeOther)
}

// courseOptions lists every course as a checkbox option, the selected
// ones checked.
func (h *Handler) courseOptions(ctx context.Context, token string, selected table.Selection) ([]courseOption, error) {
	courses, _, err := backend.List[models.Course](ctx, h.API, "/api/courses", token, url.Values{"limit": {fetchLimit}})
	if err != nil {
		return nil, err
	}
	opts := make([]courseOption, 0, len(courses))
	for _, c := range courses {
		opts = append(opts, courseOption{Value: c.ID, Label: c.Title, Assigned: selected.Has(c.ID)})
	}
	return opts, nil
}
