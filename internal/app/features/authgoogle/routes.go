package authgoogle

import "github.com/go-chi/chi/v5"

// Routes mounts the Google OAuth endpoints.
func Routes(r chi.Router, h *Handler) {
	r.Get("/auth/google", h.ServeLogin)
	r.Get("/auth/google/callback", h.ServeCallback)
}
