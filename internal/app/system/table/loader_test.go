package table

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
)

func TestLoader_StaleResponseDiscarded(t *testing.T) {
	// Fetch A (slow) is issued before fetch B (fast) with a different
	// envelope. A completes after B; B's rows must win.
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, env url.Values) ([]string, Pagination, error) {
		if env.Get("search") == "slow" {
			close(started)
			<-release
			return []string{"stale"}, Pagination{Page: 1, PageSize: 10, Total: 1}, nil
		}
		return []string{"fresh"}, Pagination{Page: 1, PageSize: 10, Total: 1}, nil
	}
	l := NewLoader(fetch)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Load(context.Background(), url.Values{"search": {"slow"}})
	}()

	// The slow fetch has registered its generation once it signals.
	<-started

	if err := l.Load(context.Background(), url.Values{"search": {"fast"}}); err != nil {
		t.Fatalf("fast load: %v", err)
	}
	close(release)
	wg.Wait()

	rows, _, state, err := l.Snapshot()
	if err != nil || state != Ready {
		t.Fatalf("state=%v err=%v", state, err)
	}
	if len(rows) != 1 || rows[0] != "fresh" {
		t.Errorf("rows = %v, stale result overwrote current one", rows)
	}
}

func TestLoader_KeepsRowsOnError(t *testing.T) {
	var fail bool
	fetch := func(ctx context.Context, env url.Values) ([]string, Pagination, error) {
		if fail {
			return nil, Pagination{}, errors.New("backend down")
		}
		return []string{"a", "b"}, Pagination{Page: 2, PageSize: 2, Total: 6}, nil
	}
	l := NewLoader(fetch)

	if err := l.Load(context.Background(), url.Values{"page": {"2"}}); err != nil {
		t.Fatalf("first load: %v", err)
	}

	fail = true
	if err := l.Load(context.Background(), url.Values{"page": {"2"}}); err == nil {
		t.Fatal("expected error from failing fetch")
	}

	rows, page, state, err := l.Snapshot()
	if state != Failed || err == nil {
		t.Errorf("state=%v err=%v, want Failed with error", state, err)
	}
	if len(rows) != 2 {
		t.Errorf("previous rows cleared on error: %v", rows)
	}
	if page.Page != 2 {
		t.Errorf("previous pagination lost: %+v", page)
	}

	// Retry re-issues the identical envelope and recovers.
	fail = false
	if err := l.Retry(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	_, _, state, err = l.Snapshot()
	if state != Ready || err != nil {
		t.Errorf("after retry state=%v err=%v", state, err)
	}
}

func TestLoader_RetryReissuesSameEnvelope(t *testing.T) {
	var got []string
	fetch := func(ctx context.Context, env url.Values) ([]string, Pagination, error) {
		got = append(got, env.Encode())
		return nil, Pagination{}, errors.New("nope")
	}
	l := NewLoader(fetch)

	env := url.Values{"page": {"2"}, "search": {"smith"}}
	_ = l.Load(context.Background(), env)
	_ = l.Retry(context.Background())

	if len(got) != 2 || got[0] != got[1] {
		t.Errorf("retry envelope differs: %v", got)
	}
}

func TestLoader_IdleUntilFirstLoad(t *testing.T) {
	l := NewLoader(func(ctx context.Context, env url.Values) ([]string, Pagination, error) {
		return nil, Pagination{}, nil
	})
	if _, _, state, _ := l.Snapshot(); state != Idle {
		t.Errorf("new loader state = %v, want Idle", state)
	}
	_ = l.Load(context.Background(), nil)
	if _, _, state, _ := l.Snapshot(); state != Ready {
		t.Errorf("loaded state = %v, want Ready", state)
	}
}
