// Package timeouts centralizes the context deadlines handlers put on
// platform API calls, from quick health pings up to CSV batch work.
// Each tier can be overridden at startup through an environment
// variable (TIMEOUT_PING, TIMEOUT_SHORT, and so on, in Go duration
// syntax).
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	tierPing = iota
	tierShort
	tierMedium
	tierLong
	tierBatch
)

var mu sync.RWMutex

var tiers = [...]struct {
	env string
	d   time.Duration
}{
	tierPing:   {"TIMEOUT_PING", 2 * time.Second},
	tierShort:  {"TIMEOUT_SHORT", 5 * time.Second},
	tierMedium: {"TIMEOUT_MEDIUM", 10 * time.Second},
	tierLong:   {"TIMEOUT_LONG", 30 * time.Second},
	tierBatch:  {"TIMEOUT_BATCH", 60 * time.Second},
}

func get(i int) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers[i].d
}

// Ping is the deadline for API health checks.
func Ping() time.Duration { return get(tierPing) }

// Short is the deadline for single-record fetches.
func Short() time.Duration { return get(tierShort) }

// Medium is the deadline for list queries and simple mutations.
func Medium() time.Duration { return get(tierMedium) }

// Long is the deadline for actions spanning several API calls.
func Long() time.Duration { return get(tierLong) }

// Batch is the deadline for bulk work like CSV imports and exports.
func Batch() time.Duration { return get(tierBatch) }

// ConfigureFromEnv applies any TIMEOUT_* environment overrides and
// reports how many took effect. Unset, malformed, and non-positive
// values keep the default. Call it once during startup, before
// handlers run.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	n := 0
	for i := range tiers {
		v := os.Getenv(tiers[i].env)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			continue
		}
		tiers[i].d = d
		n++
	}
	return n
}

// WithTimeout wraps context.WithTimeout and logs a warning when the
// returned cancel finds the deadline was hit, naming the operation so
// slow API calls show up in the logs.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
