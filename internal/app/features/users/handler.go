// internal/app/features/users/handler.go
package users

import (
	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/prefs"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
	"go.uber.org/zap"
)

const basePath = "/users"

// Handler handles the user management screens.
type Handler struct {
	API    *backend.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Prefs  prefs.Store
}

// NewHandler creates a new users handler.
func NewHandler(api *backend.Client, store prefs.Store, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Log:    logger,
		ErrLog: uierrors.NewErrorLogger(logger),
		Prefs:  store,
	}
}

// tableSpec declares the users list: debounced text search, a
// persisted role multi-select, course and cohort single-selects, and
// sorting on name, email, or signup date. The backend paginates, so
// every state change round-trips through the envelope.
func tableSpec() table.Spec {
	return table.Spec{
		Entity: "users",
		Filters: []table.FilterSpec{
			{Name: "search", Kind: table.KindText},
			{Name: "role", Kind: table.KindMultiSelect, Options: []string{"ADMIN", "USER"}, Persist: true},
			{Name: "course", Kind: table.KindSelect},
			{Name: "cohort", Kind: table.KindSelect},
		},
		SortColumns: []string{"name", "email", "createdAt"},
		DefaultSort: table.Sort{Column: "createdAt", Desc: true},
	}
}
