// internal/app/features/classroom/routes.go
package classroom

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the classroom endpoints.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/classroom", h.ServeList)
		r.Get("/classroom/table", h.ServeTable)
	})
}
