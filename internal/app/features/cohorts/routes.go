// internal/app/features/cohorts/routes.go
package cohorts

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the cohort management endpoints.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/cohorts", h.ServeList)
		r.Get("/cohorts/table", h.ServeTable)
		r.Get("/cohorts/new", h.ServeNew)
		r.Post("/cohorts", h.HandleCreate)
		r.Get("/cohorts/{id}/edit", h.ServeEdit)
		r.Post("/cohorts/{id}", h.HandleUpdate)
		r.Post("/cohorts/{id}/delete", h.HandleDelete)
	})
}
