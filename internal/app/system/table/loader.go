// internal/app/system/table/loader.go
package table

import (
	"context"
	"net/url"
	"sync"
)

// State is the lifecycle of a Loader's RowSet.
type State int

const (
	// Idle: nothing fetched yet. Distinct from an empty result.
	Idle State = iota
	// Loading: a fetch is in flight and nothing has ever completed.
	Loading
	// Ready: the rows reflect the last completed fetch.
	Ready
	// Failed: the last fetch errored; rows still hold the previous
	// good result.
	Failed
)

// FetchFunc loads rows for an envelope. Implementations read
// per-request credentials from ctx.
type FetchFunc[T any] func(ctx context.Context, envelope url.Values) ([]T, Pagination, error)

// Loader guards a RowSet behind two properties every screen needs:
//
//   - Stale-response protection: each Load supersedes earlier ones,
//     and a fetch result is applied only if its envelope is still
//     current when it completes. A slow fetch finishing after a
//     faster, newer one is discarded, never letting old rows
//     overwrite the current result.
//   - Keep-on-error: a failed fetch surfaces the error but leaves the
//     previous rows in place; the table never blanks out on a flaky
//     backend.
type Loader[T any] struct {
	fetch FetchFunc[T]

	mu    sync.Mutex
	gen   uint64
	rows  []T
	page  Pagination
	state State
	err   error
	lastQ url.Values
}

// NewLoader wraps fetch.
func NewLoader[T any](fetch FetchFunc[T]) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// Load fetches rows for the envelope. It blocks until the fetch
// completes, but may be called concurrently: the newest call wins
// regardless of completion order. The returned error is the fetch's
// own; a superseded call returns nil and its result is dropped.
func (l *Loader[T]) Load(ctx context.Context, envelope url.Values) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.lastQ = cloneValues(envelope)
	if l.state == Idle {
		l.state = Loading
	}
	l.mu.Unlock()

	rows, page, err := l.fetch(ctx, envelope)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		// A newer Load owns the state now.
		return nil
	}
	if err != nil {
		l.state = Failed
		l.err = err
		return err
	}
	l.rows = rows
	l.page = page
	l.state = Ready
	l.err = nil
	return nil
}

// Retry re-issues the identical last envelope.
func (l *Loader[T]) Retry(ctx context.Context) error {
	l.mu.Lock()
	q := cloneValues(l.lastQ)
	l.mu.Unlock()
	return l.Load(ctx, q)
}

// Snapshot returns the current rows, pagination, state, and last
// error. The slice must be treated as read-only.
func (l *Loader[T]) Snapshot() ([]T, Pagination, State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows, l.page, l.state, l.err
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		cp := make([]string, len(vals))
		copy(cp, vals)
		out[k] = cp
	}
	return out
}
