// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/authgoogle"
	blogsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/blogs"
	changerequestsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/changerequests"
	classroomfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/classroom"
	cohortsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/cohorts"
	coursesfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/courses"
	courseweeksfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/courseweeks"
	dashboardfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/dashboard"
	errorsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/errors"
	facilitatorsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/facilitators"
	healthfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/health"
	homefeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/home"
	loginfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/login"
	logoutfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/logout"
	paymentsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/payments"
	programleadsfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/programleads"
	usersfeature "github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/features/users"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/prefs"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, the API client, and any
// Startup hooks have completed. It boots the template engine, applies
// session and CSRF middleware, and mounts a feature router for every
// screen of the dashboard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup. Dev
	// mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Persisted filter selections share the session cookie secret.
	prefStore := prefs.NewSessionStore(sessionMgr.Store(), logger)

	// One-shot OAuth state cookies.
	codec := securecookie.New([]byte(appCfg.SessionKey), nil)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if
	// signed in, making auth.CurrentUser(r) work everywhere.
	r.Use(sessionMgr.LoadSessionUser)

	// Every mutation on the dashboard is a form POST.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(deps.API, sessionMgr, errLog, codec,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	authgooglefeature.Routes(r, googleHandler)

	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, errLog, googleHandler.IsConfigured(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Landing dashboard
	dashboardHandler := dashboardfeature.NewHandler(deps.API, logger)
	dashboardfeature.Routes(r, dashboardHandler, sessionMgr)

	// User management
	usersHandler := usersfeature.NewHandler(deps.API, prefStore, logger)
	usersfeature.Routes(r, usersHandler, sessionMgr)

	// Payments
	paymentsHandler := paymentsfeature.NewHandler(deps.API, logger)
	paymentsfeature.Routes(r, paymentsHandler, sessionMgr)

	// Courses and cohorts
	coursesHandler := coursesfeature.NewHandler(deps.API, logger)
	coursesfeature.Routes(r, coursesHandler, sessionMgr)

	cohortsHandler := cohortsfeature.NewHandler(deps.API, logger)
	cohortsfeature.Routes(r, cohortsHandler, sessionMgr)

	// Curriculum authoring (weeks and modules of a course)
	courseweeksHandler := courseweeksfeature.NewHandler(deps.API, logger)
	courseweeksfeature.Routes(r, courseweeksHandler, sessionMgr)

	// Classroom (assignments and grading progress)
	classroomHandler := classroomfeature.NewHandler(deps.API, logger)
	classroomfeature.Routes(r, classroomHandler, sessionMgr)

	// Content
	blogsHandler := blogsfeature.NewHandler(deps.API, logger)
	blogsfeature.Routes(r, blogsHandler, sessionMgr)

	// People
	facilitatorsHandler := facilitatorsfeature.NewHandler(deps.API, logger)
	facilitatorsfeature.Routes(r, facilitatorsHandler, sessionMgr)

	programleadsHandler := programleadsfeature.NewHandler(deps.API, prefStore, logger)
	programleadsfeature.Routes(r, programleadsHandler, sessionMgr)

	// Change request review
	changerequestsHandler := changerequestsfeature.NewHandler(deps.API, logger)
	changerequestsfeature.Routes(r, changerequestsHandler, sessionMgr)

	return r, nil
}
