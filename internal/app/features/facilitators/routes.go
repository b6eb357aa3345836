// internal/app/features/facilitators/routes.go
package facilitators

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the facilitator management endpoints. Admin-only.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/facilitators", h.ServeList)
		r.Get("/facilitators/table", h.ServeTable)
		r.Get("/facilitators/new", h.ServeNew)
		r.Post("/facilitators", h.HandleCreate)
		r.Get("/facilitators/{id}/assign", h.ServeAssign)
		r.Post("/facilitators/{id}/assign", h.HandleAssign)
		r.Post("/facilitators/{id}/delete", h.HandleDelete)
	})
}
