// Package testutil provides the fake platform API and request
// helpers shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"go.uber.org/zap"
)

// FakeAPI is an httptest server standing in for the platform REST
// API. Tests register handlers per method+path and the server records
// every request it sees.
type FakeAPI struct {
	t        *testing.T
	srv      *httptest.Server
	handlers map[string]http.HandlerFunc
	client   *backend.Client

	// Requests holds every request seen, in order, as "METHOD /path".
	Requests []string
	// LastQuery is the query string of the most recent request.
	LastQuery string
	// LastAuth is the Authorization header of the most recent request.
	LastAuth string
	// LastBody is the raw body of the most recent request.
	LastBody []byte
}

// NewFakeAPI starts the fake server and builds a backend client
// pointed at it. Both are torn down with the test.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{t: t, handlers: map[string]http.HandlerFunc{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		f.Requests = append(f.Requests, key)
		f.LastQuery = r.URL.RawQuery
		f.LastAuth = r.Header.Get("Authorization")
		if r.Body != nil {
			body, _ := io.ReadAll(r.Body)
			f.LastBody = body
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		if h, ok := f.handlers[key]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(f.srv.Close)

	client, err := backend.New(f.srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	f.client = client
	return f
}

// Client returns the backend client wired to this fake.
func (f *FakeAPI) Client() *backend.Client { return f.client }

// Handle registers a handler for "METHOD /path". Registering the same
// pattern again replaces the earlier handler, so a test can override a
// shared fixture stub.
func (f *FakeAPI) Handle(pattern string, h http.HandlerFunc) {
	f.handlers[pattern] = h
}

// RespondJSON registers a handler that always writes the given value
// as JSON.
func (f *FakeAPI) RespondJSON(pattern string, v any) {
	f.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})
}

// RespondStatus registers a handler that writes only a status code.
func (f *FakeAPI) RespondStatus(pattern string, code int) {
	f.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		w.Write([]byte(`{}`))
	})
}

// ListEnvelope builds the platform's list response shape:
// {"data": {<resource>: rows, "pagination": {...}}}.
func ListEnvelope(resource string, rows any, page, limit, total int) map[string]any {
	return map[string]any{
		"data": map[string]any{
			resource: rows,
			"pagination": map[string]any{
				"currentPage": page,
				"limit":       limit,
				"total":       total,
				"hasNextPage": page*limit < total,
			},
		},
	}
}

// DataEnvelope wraps a value in the single-record response shape
// {"data": v}.
func DataEnvelope(v any) map[string]any {
	return map[string]any{"data": v}
}
