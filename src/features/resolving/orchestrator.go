package resolving

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lyrica/src/lyrics"
)

// Orchestrator executes a provider plan, sequentially or as a parallel
// race, and produces one winning candidate plus the full attempt trail.
type Orchestrator struct {
	fetchers map[lyrics.ProviderID]lyrics.Fetcher
}

// NewOrchestrator creates an orchestrator over the given adapters.
func NewOrchestrator(fetchers []lyrics.Fetcher) *Orchestrator {
	byID := make(map[lyrics.ProviderID]lyrics.Fetcher, len(fetchers))
	for _, f := range fetchers {
		byID[f.ID()] = f
	}
	return &Orchestrator{fetchers: byID}
}

// Execute runs the plan with the given fixed per-provider timeout. On
// exhaustion it returns a NotFoundError carrying every attempt.
func (o *Orchestrator) Execute(ctx context.Context, req lyrics.LyricsRequest, plan []lyrics.ProviderID, timeout time.Duration) (*lyrics.Candidate, []lyrics.AttemptRecord, error) {
	if req.FastMode {
		return o.race(ctx, req, plan, timeout)
	}
	return o.sequential(ctx, req, plan, timeout)
}

// sequential tries providers in plan order, one outstanding call at a time,
// stopping at the first success. The overall deadline is the sum of the
// per-provider timeouts.
func (o *Orchestrator) sequential(ctx context.Context, req lyrics.LyricsRequest, plan []lyrics.ProviderID, timeout time.Duration) (*lyrics.Candidate, []lyrics.AttemptRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(len(plan))*timeout)
	defer cancel()

	attempts := make([]lyrics.AttemptRecord, 0, len(plan))
	for _, id := range plan {
		fetcher, ok := o.fetchers[id]
		if !ok {
			attempts = append(attempts, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeError, Message: "not configured"})
			continue
		}

		candidate, record := o.attempt(ctx, fetcher, req, timeout)
		attempts = append(attempts, record)
		if record.Outcome == lyrics.OutcomeSuccess {
			return candidate, attempts, nil
		}
	}
	return nil, attempts, &lyrics.NotFoundError{Artist: req.Artist, Song: req.Song, Attempts: attempts}
}

type completion struct {
	planIndex int
	candidate *lyrics.Candidate
	record    lyrics.AttemptRecord
}

// race launches every planned provider concurrently under one shared
// timeout. The first success observed is committed exactly once; when
// several completions are already queued (a same-tick tie) the plan order
// decides. Losing calls are cancelled advisorily but their attempt records
// are still collected, so a late success shows up in the trail without ever
// replacing the committed winner.
func (o *Orchestrator) race(ctx context.Context, req lyrics.LyricsRequest, plan []lyrics.ProviderID, timeout time.Duration) (*lyrics.Candidate, []lyrics.AttemptRecord, error) {
	raceCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan completion, len(plan))
	launched := 0
	attempts := make([]lyrics.AttemptRecord, 0, len(plan))
	for i, id := range plan {
		fetcher, ok := o.fetchers[id]
		if !ok {
			attempts = append(attempts, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeError, Message: "not configured"})
			continue
		}
		launched++
		go func(planIndex int, f lyrics.Fetcher) {
			candidate, record := o.attempt(raceCtx, f, req, timeout)
			results <- completion{planIndex: planIndex, candidate: candidate, record: record}
		}(i, fetcher)
	}

	var winner *lyrics.Candidate
	for received := 0; received < launched; {
		batch := []completion{<-results}
		received++
	drain:
		for received < launched {
			select {
			case extra := <-results:
				batch = append(batch, extra)
				received++
			default:
				break drain
			}
		}

		for _, c := range batch {
			attempts = append(attempts, c.record)
		}
		if winner == nil {
			best := -1
			for i, c := range batch {
				if c.record.Outcome != lyrics.OutcomeSuccess {
					continue
				}
				if best == -1 || c.planIndex < batch[best].planIndex {
					best = i
				}
			}
			if best >= 0 {
				winner = batch[best].candidate
				cancel()
			}
		}
	}

	if winner == nil {
		return nil, attempts, &lyrics.NotFoundError{Artist: req.Artist, Song: req.Song, Attempts: attempts}
	}
	return winner, attempts, nil
}

// attempt performs one bounded provider call and classifies the outcome.
// Provider errors are absorbed into the record, never returned.
func (o *Orchestrator) attempt(ctx context.Context, fetcher lyrics.Fetcher, req lyrics.LyricsRequest, timeout time.Duration) (*lyrics.Candidate, lyrics.AttemptRecord) {
	id := fetcher.ID()
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Debug("Trying lyrics provider", "provider", id, "artist", req.Artist, "song", req.Song, "timestamps", req.WantTimestamps)
	candidate, err := fetcher.Fetch(callCtx, req.Artist, req.Song, req.WantTimestamps)

	switch {
	case err != nil:
		message := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			message = "timeout"
		}
		slog.Warn("Provider failed", "provider", id, "artist", req.Artist, "song", req.Song, "error", err)
		return nil, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeError, Message: message}

	case candidate == nil:
		return nil, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeNoResults}

	case req.WantTimestamps && !candidate.HasTimestamps():
		// a plain-only hit does not satisfy a synced request
		return nil, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeNoResults, Message: "no synchronized lyrics"}

	default:
		if err := candidate.ValidateLines(); err != nil {
			slog.Warn("Provider returned malformed timed lyrics", "provider", id, "error", err)
			return nil, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeError, Message: "malformed timed lyrics: " + err.Error()}
		}
		candidate.Source = id
		return candidate, lyrics.AttemptRecord{Provider: id, Outcome: lyrics.OutcomeSuccess}
	}
}
