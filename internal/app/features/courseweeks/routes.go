// internal/app/features/courseweeks/routes.go
package courseweeks

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the curriculum authoring endpoints under a course.
// The course segment reuses the {id} parameter of the courses routes.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/courses/{id}/weeks", h.ServeList)
		r.Get("/courses/{id}/weeks/table", h.ServeTable)
		r.Post("/courses/{id}/weeks", h.HandleCreate)
		r.Get("/courses/{id}/weeks/{weekID}", h.ServeEdit)
		r.Post("/courses/{id}/weeks/{weekID}", h.HandleUpdate)
		r.Post("/courses/{id}/weeks/{weekID}/delete", h.HandleDelete)
		r.Post("/courses/{id}/weeks/{weekID}/modules", h.HandleModuleCreate)
		r.Get("/courses/{id}/weeks/{weekID}/modules/{moduleID}", h.ServeModule)
		r.Post("/courses/{id}/weeks/{weekID}/modules/{moduleID}", h.HandleModuleUpdate)
		r.Post("/courses/{id}/weeks/{weekID}/modules/{moduleID}/delete", h.HandleModuleDelete)
	})
}
