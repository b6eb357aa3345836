// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, environment); AppConfig is everything specific to this
// dashboard: where the platform API lives, session cookies, and the
// optional Google sign-in credentials.
type AppConfig struct {
	// Platform API configuration. Every entity the dashboard shows
	// is owned by this backend.
	APIBaseURL string        // e.g. https://api.10alytics.org
	APITimeout time.Duration // per-request ceiling for API calls

	// Session management configuration
	SessionKey    string        // secret for signing/encrypting session cookies
	SessionName   string        // session cookie name
	SessionDomain string        // cookie domain (blank means current host)
	SessionTTL    time.Duration // how long a sign-in lasts

	// CSRF protection. Falls back to SessionKey when unset.
	CSRFKey string

	// Google OAuth configuration (Google sign-in is disabled when
	// either value is blank).
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is this dashboard's externally visible URL, used to
	// build the OAuth callback, e.g. "https://admin.10alytics.org".
	BaseURL string
}
