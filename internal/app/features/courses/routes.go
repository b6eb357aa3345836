// internal/app/features/courses/routes.go
package courses

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the course management endpoints.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/courses", h.ServeList)
		r.Get("/courses/table", h.ServeTable)
		r.Get("/courses/new", h.ServeNew)
		r.Post("/courses", h.HandleCreate)
		r.Get("/courses/{id}/edit", h.ServeEdit)
		r.Post("/courses/{id}", h.HandleUpdate)
		r.Post("/courses/{id}/publish", h.HandlePublishToggle)
		r.Post("/courses/{id}/delete", h.HandleDelete)
	})
}
