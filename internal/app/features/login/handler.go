package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/navigation"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/ratelimit"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/viewdata"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	API           *backend.Client
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	GoogleEnabled bool
	Limits        *ratelimit.LoginLimiter
}

func NewHandler(api *backend.Client, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		API:           api,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		GoogleEnabled: googleEnabled,
		Limits:        ratelimit.NewLoginLimiter(),
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

// signinResult tolerates the two token field names the API has used.
type signinResult struct {
	User        models.User `json:"user"`
	Token       string      `json:"token"`
	AccessToken string      `json:"accessToken"`
}

func (s signinResult) token() string {
	if s.Token != "" {
		return s.Token
	}
	return s.AccessToken
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login", "/"),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

// HandleLoginPost handles POST /login. Credentials are exchanged with
// the platform API for a bearer token; only admins may sign in to the
// dashboard.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email, returnURL)
		return
	}

	if ok, reason := h.Limits.Check(r, email); !ok {
		h.Log.Warn("sign-in rate limited", zap.String("email", email))
		h.renderFormWithError(w, r, reason, email, returnURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	result, err := backend.PostJSON[signinResult](ctx, h.API, "/api/auth/signin", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrNotFound) {
			h.Log.Info("sign-in rejected", zap.String("email", email))
			h.renderFormWithError(w, r, "Incorrect email or password.", email, returnURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "sign-in request failed", err,
			"Could not reach the platform. Please try again.", "/login")
		return
	}

	if result.token() == "" {
		h.ErrLog.LogServerError(w, r, "sign-in response missing token", nil,
			"Could not complete sign-in. Please try again.", "/login")
		return
	}

	if !result.User.IsAdmin() {
		h.Log.Warn("non-admin sign-in attempt",
			zap.String("email", email),
			zap.String("role", result.User.Role))
		h.renderFormWithError(w, r, "Your account does not have admin access.", email, returnURL)
		return
	}

	h.Limits.ResetEmail(email)

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

	http.Redirect(w, r, navigation.Validate(returnURL, navigation.SignInBackURL), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     returnURL,
		GoogleEnabled: h.GoogleEnabled,
	})
}
