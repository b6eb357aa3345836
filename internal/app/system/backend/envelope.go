package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/table"
)

// GetJSON fetches path?query and decodes the "data" member of the
// response envelope into T.
func GetJSON[T any](ctx context.Context, c *Client, path, token string, query url.Values) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, path, token, query, nil, &env)
	return env.Data, err
}

// PostJSON posts body to path and decodes the envelope's "data" into T.
func PostJSON[T any](ctx context.Context, c *Client, path, token string, body any) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, path, token, nil, body, &env)
	return env.Data, err
}

// PatchJSON patches path with body, decoding "data" into T.
func PatchJSON[T any](ctx context.Context, c *Client, path, token string, body any) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	err := c.do(ctx, http.MethodPatch, path, token, nil, body, &env)
	return env.Data, err
}

// Delete issues DELETE path, ignoring any response body beyond the
// status check.
func (c *Client) Delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}

// pageMeta tolerates the field-name drift across the API's list
// endpoints: some report totalUsers, some total, some totalItems;
// some currentPage, some page.
type pageMeta struct {
	Page        int `json:"page"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
	PageSize    int `json:"pageSize"`
	Total       int `json:"total"`
	TotalItems  int `json:"totalItems"`
	TotalUsers  int `json:"totalUsers"`
	TotalPages  int `json:"totalPages"`
}

func (m pageMeta) page() int {
	if m.Page > 0 {
		return m.Page
	}
	if m.CurrentPage > 0 {
		return m.CurrentPage
	}
	return 1
}

func (m pageMeta) limit(fallback int) int {
	if m.Limit > 0 {
		return m.Limit
	}
	if m.PageSize > 0 {
		return m.PageSize
	}
	return fallback
}

func (m pageMeta) total() int {
	switch {
	case m.Total > 0:
		return m.Total
	case m.TotalItems > 0:
		return m.TotalItems
	case m.TotalUsers > 0:
		return m.TotalUsers
	}
	return 0
}

// List fetches a server-side paginated collection. The API wraps list
// responses as {"data": {"pagination": {...}, "<resource>": [...]}}
// where the array's field name varies per endpoint, so the rows are
// found by scanning data's members for the first JSON array.
func List[T any](ctx context.Context, c *Client, path, token string, envelope url.Values) ([]T, table.Pagination, error) {
	var env struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, envelope, nil, &env); err != nil {
		return nil, table.Pagination{}, err
	}

	var meta pageMeta
	if raw, ok := env.Data["pagination"]; ok {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, table.Pagination{}, fmt.Errorf("backend: decode pagination: %w", err)
		}
	}

	rows, err := listRows[T](env.Data)
	if err != nil {
		return nil, table.Pagination{}, err
	}

	wantLimit, _ := strconv.Atoi(envelope.Get("limit"))
	if wantLimit <= 0 {
		wantLimit = len(rows)
		if wantLimit == 0 {
			wantLimit = 1
		}
	}

	p := table.Pagination{
		Page:     meta.page(),
		PageSize: meta.limit(wantLimit),
		Total:    meta.total(),
	}
	if p.Total == 0 {
		p.Total = len(rows)
	}
	return rows, p, nil
}

// listRows finds the row array inside the data object, skipping the
// pagination member and any non-array siblings (stats blocks and the
// like ride along on some endpoints).
func listRows[T any](data map[string]json.RawMessage) ([]T, error) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == "pagination" {
			continue
		}
		raw := data[key]
		if firstByte(raw) != '[' {
			continue
		}
		var rows []T
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("backend: decode %q rows: %w", key, err)
		}
		return rows, nil
	}
	return []T{}, nil
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
