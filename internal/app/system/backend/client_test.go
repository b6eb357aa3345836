package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"id":"u1"}}`))
	}))

	type user struct {
		ID string `json:"id"`
	}
	u, err := GetJSON[user](context.Background(), c, "/api/users/u1", "tok-123", nil)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("ID = %q, want u1", u.ID)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestClientErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"message":"token expired"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnauthorized) {
					t.Errorf("want ErrUnauthorized, got %v", err)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnauthorized) {
					t.Errorf("want ErrUnauthorized, got %v", err)
				}
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("want ErrNotFound, got %v", err)
				}
			},
		},
		{
			name:   "server error carries message",
			status: http.StatusInternalServerError,
			body:   `{"error":"database offline"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("want *APIError, got %v", err)
				}
				if apiErr.Status != http.StatusInternalServerError {
					t.Errorf("Status = %d", apiErr.Status)
				}
				if apiErr.Message != "database offline" {
					t.Errorf("Message = %q", apiErr.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			err := c.Do(context.Background(), http.MethodGet, "/api/users", "", nil, nil, nil)
			if err == nil {
				t.Fatal("want error, got nil")
			}
			tt.check(t, err)
		})
	}
}

func TestListNormalizesPaginationDrift(t *testing.T) {
	type user struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name      string
		body      string
		wantRows  int
		wantPage  int
		wantTotal int
	}{
		{
			name: "users shape",
			body: `{"data":{"users":[{"name":"Ada"},{"name":"Ben"}],
				"pagination":{"currentPage":2,"limit":10,"totalUsers":34,"hasNextPage":true}}}`,
			wantRows: 2, wantPage: 2, wantTotal: 34,
		},
		{
			name: "payments shape",
			body: `{"data":{"payments":[{"name":"p1"}],
				"pagination":{"page":1,"limit":10,"total":7}}}`,
			wantRows: 1, wantPage: 1, wantTotal: 7,
		},
		{
			name: "stats block alongside rows",
			body: `{"data":{"stats":{"revenue":12000},"requests":[{"name":"r1"},{"name":"r2"},{"name":"r3"}],
				"pagination":{"page":1,"limit":10,"totalItems":3}}}`,
			wantRows: 3, wantPage: 1, wantTotal: 3,
		},
		{
			name:     "no pagination block falls back to row count",
			body:     `{"data":{"courses":[{"name":"go"},{"name":"sql"}]}}`,
			wantRows: 2, wantPage: 1, wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			env := url.Values{"page": {"1"}, "limit": {"10"}}
			rows, p, err := List[user](context.Background(), c, "/api/users", "tok", env)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(rows), tt.wantRows)
			}
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", p.Total, tt.wantTotal)
			}
		})
	}
}

func TestListForwardsEnvelope(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":{"users":[],"pagination":{"page":1,"limit":10,"total":0}}}`))
	}))

	type user struct{}
	env := url.Values{}
	env.Set("page", "3")
	env.Set("limit", "20")
	env.Set("search", "smith")
	env.Set("role", "ADMIN,USER")
	if _, _, err := List[user](context.Background(), c, "/api/users", "tok", env); err != nil {
		t.Fatalf("List: %v", err)
	}
	for k, want := range map[string]string{"page": "3", "limit": "20", "search": "smith", "role": "ADMIN,USER"} {
		if got := gotQuery.Get(k); got != want {
			t.Errorf("query %s = %q, want %q", k, got, want)
		}
	}
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	if _, err := New("api.example.com/v1", 0, nil); err == nil {
		t.Fatal("want error for relative base URL")
	}
}
