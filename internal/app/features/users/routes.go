// internal/app/features/users/routes.go
package users

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user management endpoints. Everything here is
// admin-only.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/users", h.ServeList)
		r.Get("/users/table", h.ServeTable)
		r.Post("/users/import", h.HandleImport)
		r.Post("/users/{id}/role", h.HandleRoleChange)
		r.Post("/users/{id}/status", h.HandleStatusToggle)
		r.Post("/users/{id}/delete", h.HandleDelete)
	})
}
