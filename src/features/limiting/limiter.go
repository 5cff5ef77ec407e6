// Package limiting bounds the request rate per client identity.
package limiting

import (
	"context"
	"log/slog"
	"time"

	"lyrica/src/infra/store"
)

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter per client identity over an injectable
// counter store. Store failures fail open: the resolution path stays
// available when the limiter backend degrades.
type Limiter struct {
	counter store.Counter
	max     int64
	window  time.Duration
}

// NewLimiter creates a limiter allowing max requests per window.
func NewLimiter(counter store.Counter, max int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, max: int64(max), window: window}
}

// Allow records a request for identity and decides whether it may proceed.
// A denied decision carries the time remaining until the window resets.
func (l *Limiter) Allow(ctx context.Context, identity string) Decision {
	count, remaining, err := l.counter.IncrementWindow(ctx, identity, l.window)
	if err != nil {
		slog.Warn("Rate limiter store failed, allowing request", "identity", identity, "error", err)
		return Decision{Allowed: true}
	}
	if count > l.max {
		retry := remaining
		if retry < time.Second {
			retry = time.Second
		}
		return Decision{Allowed: false, RetryAfter: retry}
	}
	return Decision{Allowed: true}
}
