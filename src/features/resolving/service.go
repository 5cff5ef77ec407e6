// Package resolving implements the lyrics resolution engine: sequence
// planning, provider orchestration and the request-level flow around the
// cache and enrichment layers.
package resolving

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lyrica/src/features/caching"
	"lyrica/src/features/enriching"
	"lyrica/src/features/metrics"
	"lyrica/src/lyrics"
)

// Service is the engine entry point used by the HTTP handlers.
type Service struct {
	planner  *Planner
	orch     *Orchestrator
	cache    *caching.Service
	enricher *enriching.Pipeline
	metrics  *metrics.Recorder
	timeout  func() time.Duration
}

// NewService wires the engine. timeout is read per request so config
// reloads take effect without a restart.
func NewService(planner *Planner, orch *Orchestrator, cache *caching.Service, enricher *enriching.Pipeline, rec *metrics.Recorder, timeout func() time.Duration) *Service {
	return &Service{
		planner:  planner,
		orch:     orch,
		cache:    cache,
		enricher: enricher,
		metrics:  rec,
		timeout:  timeout,
	}
}

// Resolve runs the full flow for one request: cache lookup, planning,
// orchestration, enrichment, cache fill. The returned result is owned by
// the caller; the cache never holds enriched instances.
func (s *Service) Resolve(ctx context.Context, req lyrics.LyricsRequest) (*lyrics.ResolutionResult, []lyrics.AttemptRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	trace := uuid.NewString()[:8]
	log := slog.With("trace", trace, "artist", req.Artist, "song", req.Song)

	fingerprint := req.Fingerprint()
	if entry, ok := s.cache.Get(ctx, fingerprint); ok {
		s.metrics.CacheHit()
		log.Info("Cache hit", "source", entry.Result.Source, "age", time.Since(entry.CreatedAt).Round(time.Millisecond))
		// hand out a private copy so per-request enrichment never
		// mutates the shared cached result
		result := *entry.Result
		result.Mood, result.Metadata = nil, nil
		s.enricher.Enrich(ctx, req, &result)
		return &result, entry.Attempts, nil
	}
	s.metrics.CacheMiss()

	plan, err := s.planner.Plan(req)
	if err != nil {
		s.metrics.Resolution("planning_error", mode(req), 0)
		log.Warn("No usable provider sequence", "custom", req.CustomSequence)
		return nil, nil, err
	}
	log.Info("Resolving lyrics", "plan", plan, "fast", req.FastMode, "timestamps", req.WantTimestamps)

	started := time.Now()
	candidate, attempts, err := s.orch.Execute(ctx, req, plan, s.timeout())
	for _, a := range attempts {
		s.metrics.ProviderAttempt(string(a.Provider), string(a.Outcome))
	}
	if err != nil {
		s.metrics.Resolution("not_found", mode(req), time.Since(started))
		log.Info("Lyrics not found", "attempts", len(attempts))
		return nil, attempts, err
	}

	result := lyrics.ResultFromCandidate(candidate, req.WantTimestamps, time.Now())
	s.metrics.Resolution("success", mode(req), time.Since(started))
	log.Info("Lyrics resolved", "source", result.Source, "timestamps", result.HasTimestamps, "elapsed", time.Since(started).Round(time.Millisecond))

	// cache the bare result before enrichment touches it
	cached := *result
	s.cache.Put(ctx, fingerprint, &cached, attempts)

	s.enricher.Enrich(ctx, req, result)
	return result, attempts, nil
}

func mode(req lyrics.LyricsRequest) string {
	if req.FastMode {
		return "parallel"
	}
	return "sequential"
}
