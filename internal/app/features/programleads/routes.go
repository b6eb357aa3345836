// internal/app/features/programleads/routes.go
package programleads

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the programme lead endpoints. Admin-only.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/program-leads", h.ServeList)
		r.Get("/program-leads/table", h.ServeTable)
		r.Get("/program-leads/export", h.ServeExport)
	})
}
