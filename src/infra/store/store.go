// Package store provides the key-value contract backing the cache layer and
// the rate limiter, with in-process and shared implementations.
package store

import (
	"context"
	"time"
)

// Store is a TTL-aware key-value store. Values are opaque bytes; callers
// handle serialization. Expired entries behave as absent on Get.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Flush removes every entry and returns how many were dropped.
	Flush(ctx context.Context) (int, error)
	// Len returns the current number of live entries.
	Len(ctx context.Context) (int, error)
}

// Counter maintains fixed-window counters for rate limiting.
type Counter interface {
	// IncrementWindow bumps the counter for key, starting a fresh window of
	// the given length if none is active. It returns the count within the
	// current window and the time remaining until the window resets.
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Backend is what every full store implementation provides: entries for
// the cache plus counters for the limiter, on shared infrastructure.
type Backend interface {
	Store
	Counter
}
