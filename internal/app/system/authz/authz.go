package authz

import (
	"net/http"
	"strings"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
)

// UserCtx returns the user's role (uppercased, matching the API's
// role values), name, ID, and a found flag. If no user is present in
// context, it returns "VISITOR", "", "", false, so ok=true can be
// trusted to mean an authenticated user.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ID == "" {
		return "VISITOR", "", "", false
	}
	return strings.ToUpper(user.Role), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "ADMIN"
}

// IsLearner reports whether the current request's user is a regular
// platform user rather than an admin.
func IsLearner(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "USER"
}
