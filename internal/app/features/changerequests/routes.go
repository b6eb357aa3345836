// internal/app/features/changerequests/routes.go
package changerequests

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the change request review endpoints. Admin-only.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/change-requests", h.ServeList)
		r.Get("/change-requests/table", h.ServeTable)
		r.Post("/change-requests/{id}/approve", h.HandleApprove)
		r.Post("/change-requests/{id}/reject", h.HandleReject)
	})
}
