// internal/app/features/blogs/routes.go
package blogs

import (
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the blog management endpoints.
func Routes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Use(sm.RequireRole("ADMIN"))

		r.Get("/blogs", h.ServeList)
		r.Get("/blogs/table", h.ServeTable)
		r.Get("/blogs/{id}/edit", h.ServeEdit)
		r.Post("/blogs/{id}", h.HandleUpdate)
		r.Post("/blogs/{id}/delete", h.HandleDelete)
	})
}
