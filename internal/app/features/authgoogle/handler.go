package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/navigation"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateCookie carries the OAuth state between the redirect to Google
// and the callback. It lives in a signed cookie rather than storage;
// this process keeps no state of its own.
const stateCookie = "opadmin-oauth-state"

// Handler handles Google OAuth sign-in for admins.
type Handler struct {
	API        *backend.Client
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Codec      *securecookie.SecureCookie

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://admin.example.com/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler. baseURL is the
// dashboard's own public URL, used to build the callback address.
func NewHandler(api *backend.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, codec *securecookie.SecureCookie, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		API:          api,
		Log:          logger,
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		Codec:        codec,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(baseURL, "/") + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured reports whether Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

type statePayload struct {
	State     string
	ReturnURL string
}

// ServeLogin handles GET /auth/google: redirects to Google's consent
// screen with a fresh state value parked in a signed cookie.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	encoded, err := h.Codec.Encode(stateCookie, statePayload{
		State:     state,
		ReturnURL: query.Get(r, "return"),
	})
	if err != nil {
		h.Log.Error("failed to encode OAuth state cookie", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusSeeOther)
}

// googleSigninResult mirrors the platform's /api/auth/google response.
type googleSigninResult struct {
	User        models.User `json:"user"`
	Token       string      `json:"token"`
	AccessToken string      `json:"accessToken"`
}

func (g googleSigninResult) token() string {
	if g.Token != "" {
		return g.Token
	}
	return g.AccessToken
}

// ServeCallback handles GET /auth/google/callback: verifies state,
// exchanges the code with Google, then trades the Google ID token
// with the platform API for a dashboard session.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	var payload statePayload
	if c, err := r.Cookie(stateCookie); err != nil {
		h.Log.Warn("OAuth callback without state cookie")
		http.Redirect(w, r, "/login?error=oauth_state", http.StatusSeeOther)
		return
	} else if err := h.Codec.Decode(stateCookie, c.Value, &payload); err != nil {
		h.Log.Warn("OAuth state cookie unreadable", zap.Error(err))
		http.Redirect(w, r, "/login?error=oauth_state", http.StatusSeeOther)
		return
	}
	// One-shot: clear the cookie regardless of the outcome.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/google", MaxAge: -1})

	if got := query.Get(r, "state"); got == "" || got != payload.State {
		h.Log.Warn("OAuth state mismatch")
		http.Redirect(w, r, "/login?error=oauth_state", http.StatusSeeOther)
		return
	}

	code := query.Get(r, "code")
	if code == "" {
		// User cancelled at the consent screen.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	tok, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Warn("OAuth code exchange failed", zap.Error(err))
		http.Redirect(w, r, "/login?error=oauth_exchange", http.StatusSeeOther)
		return
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		h.Log.Warn("OAuth exchange returned no id_token")
		http.Redirect(w, r, "/login?error=oauth_exchange", http.StatusSeeOther)
		return
	}

	result, err := backend.PostJSON[googleSigninResult](ctx, h.API, "/api/auth/google", "", map[string]string{
		"idToken": idToken,
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrNotFound) {
			http.Redirect(w, r, "/login?error=no_account", http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "google sign-in with platform failed", err,
			"Could not complete sign-in. Please try again.", "/login")
		return
	}

	if result.token() == "" || !result.User.IsAdmin() {
		h.Log.Warn("google sign-in without admin access",
			zap.String("email", result.User.Email),
			zap.String("role", result.User.Role))
		http.Redirect(w, r, "/login?error=not_admin", http.StatusSeeOther)
		return
	}

	err = h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    result.User.ID,
		Name:  result.User.Name,
		Email: result.User.Email,
		Role:  result.User.Role,
		Token: result.token(),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err,
			"Could not complete sign-in. Please try again.", "/login")
		return
	}

	http.Redirect(w, r, navigation.Validate(payload.ReturnURL, navigation.SignInBackURL), http.StatusSeeOther)
}

// generateState returns a cryptographically random URL-safe string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
