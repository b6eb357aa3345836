package home

import (
	"net/http"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the root path. The dashboard is the real landing
// page; the root just routes people to the right place.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeHome handles GET /. Signed-in users land on the dashboard,
// everyone else on the login page.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
