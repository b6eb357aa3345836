package errors

import (
	goerrors "errors"
	"net/http"
	"net/url"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs logging with user-facing error pages so handlers
// can report a failure in one call.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger bound to the given logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs an internal failure and renders the server
// error page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path))

	if backURL == "" {
		backURL = "/"
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_server", pageData{
		Title:   "Something went wrong",
		Message: userMsg,
		BackURL: backURL,
	})
}

// LogBadRequest logs a client error and renders the server error page
// with a 400 status.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Warn(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path))

	if backURL == "" {
		backURL = "/"
	}
	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "error_server", pageData{
		Title:   "Invalid request",
		Message: userMsg,
		BackURL: backURL,
	})
}

// HandleAPIError routes a platform API failure to the right page:
// expired or missing tokens go back through sign-in, missing records
// get the not-found page, and everything else is a server error.
func (e *ErrorLogger) HandleAPIError(w http.ResponseWriter, r *http.Request, err error, backURL string) {
	switch {
	case goerrors.Is(err, backend.ErrUnauthorized):
		e.Log.Info("api token rejected, redirecting to login",
			zap.String("path", r.URL.Path))
		ret := url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
	case goerrors.Is(err, backend.ErrNotFound):
		RenderNotFound(w, r, "", backURL)
	default:
		e.LogServerError(w, r, "platform api call failed", err,
			"The platform API could not be reached. Please try again.", backURL)
	}
}
