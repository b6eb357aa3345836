// Package navigation validates return URLs so redirects stay on-site.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix, when set, is the required path prefix.
	AllowedPrefix string

	// ExcludedSubpaths are substrings to reject, preventing redirect
	// loops back onto action pages.
	ExcludedSubpaths []string

	// Fallback is used when no valid return URL is present.
	Fallback string
}

// SignInBackURL validates the post-sign-in return target. Any
// same-origin path is acceptable except the auth pages themselves.
var SignInBackURL = BackURLOptions{
	ExcludedSubpaths: []string{"/login", "/logout", "/auth/google"},
	Fallback:         "/dashboard",
}

// SafeBackURL extracts the "return" value from the query or form,
// rejects offsite and excluded targets, and falls back to
// opts.Fallback.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	return Validate(ret, opts)
}

// Validate applies opts to an already-extracted candidate path.
func Validate(ret string, opts BackURLOptions) string {
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") {
		return opts.Fallback
	}
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return opts.Fallback
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return opts.Fallback
		}
	}
	return ret
}
