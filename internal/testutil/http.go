package testutil

import (
	"context"
	"net/http"
	"strings"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	return WithChiURLParams(r, map[string]string{key: value})
}

// WithChiURLParams adds several chi URL parameters at once, for
// nested routes like /courses/{id}/weeks/{weekID}.
func WithChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AsAdmin injects an admin SessionUser into the request context, the
// way LoadSessionUser would for a signed-in admin.
func AsAdmin(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    "64f1c2d3e4a5b6c7d8e9f0a1",
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  "ADMIN",
		Token: "test-token",
	})
}

// AsLearner injects a non-admin SessionUser into the request context.
func AsLearner(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    "64f1c2d3e4a5b6c7d8e9f0b2",
		Name:  "Test Learner",
		Email: "learner@test.com",
		Role:  "USER",
		Token: "learner-token",
	})
}

// FormRequest builds a POST request with form-encoded body.
func FormRequest(path, body string) *http.Request {
	r, _ := http.NewRequest("POST", path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}
