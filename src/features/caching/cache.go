// Package caching memoizes full resolutions by request fingerprint.
package caching

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"lyrica/src/infra/store"
	"lyrica/src/lyrics"
)

// Entry is one cached resolution: the base result plus the attempt trail
// that produced it. Enrichment is not cached; it is recomputed per request.
type Entry struct {
	Result    *lyrics.ResolutionResult `json:"result"`
	Attempts  []lyrics.AttemptRecord   `json:"attempts"`
	CreatedAt time.Time                `json:"created_at"`
}

// Stats is the read-only counter snapshot exposed to callers.
type Stats struct {
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Entries    int    `json:"entries"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Service is the cache layer over an injectable KV store. Store failures
// fail empty: a broken backend degrades to a pass-through, never an error.
type Service struct {
	store  store.Store
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewService creates a cache with the given TTL for every entry.
func NewService(kv store.Store, ttl time.Duration) *Service {
	return &Service{store: kv, ttl: ttl}
}

// Get looks up a fingerprint. Expired or corrupted entries are misses.
func (s *Service) Get(ctx context.Context, fingerprint string) (*Entry, bool) {
	data, ok, err := s.store.Get(ctx, fingerprint)
	if err != nil {
		slog.Warn("Cache lookup failed, treating as miss", "error", err)
		s.misses.Add(1)
		return nil, false
	}
	if !ok {
		s.misses.Add(1)
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		slog.Warn("Corrupted cache entry dropped", "fingerprint", fingerprint, "error", err)
		s.store.Delete(ctx, fingerprint)
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return &entry, true
}

// Put stores a resolution under its fingerprint. Concurrent misses for the
// same fingerprint each resolve independently; the last write wins, which is
// acceptable for short TTLs.
func (s *Service) Put(ctx context.Context, fingerprint string, result *lyrics.ResolutionResult, attempts []lyrics.AttemptRecord) {
	entry := Entry{Result: result, Attempts: attempts, CreatedAt: time.Now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("Failed to encode cache entry", "error", err)
		return
	}
	if err := s.store.Set(ctx, fingerprint, data, s.ttl); err != nil {
		slog.Warn("Failed to store cache entry", "error", err)
	}
}

// Clear drops every entry and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	return s.store.Flush(ctx)
}

// Stats returns the cumulative hit/miss counters and the live entry count.
func (s *Service) Stats(ctx context.Context) Stats {
	entries, err := s.store.Len(ctx)
	if err != nil {
		slog.Warn("Failed to count cache entries", "error", err)
	}
	return Stats{
		Hits:       s.hits.Load(),
		Misses:     s.misses.Load(),
		Entries:    entries,
		TTLSeconds: int(s.ttl.Seconds()),
	}
}
