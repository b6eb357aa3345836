// internal/app/features/payments/routes.go
package payments

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the payments endpoints.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/payments", h.ServeList)
		r.Get("/payments/table", h.ServeTable)
		r.Post("/payments/{id}/status", h.HandleStatusChange)
	})
}
