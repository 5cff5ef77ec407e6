package resolving

import (
	"log/slog"

	"lyrica/src/lyrics"
)

// defaultSyncedSequence is the priority order over timestamp-capable
// providers, fastest and most reliable first.
var defaultSyncedSequence = []lyrics.ProviderID{
	lyrics.ProviderLRCLIB,
	lyrics.ProviderSimpMusic,
	lyrics.ProviderYouTubeMusic,
}

// Planner computes the ordered provider sequence for a request.
type Planner struct {
	enabled func(lyrics.ProviderID) bool
}

// NewPlanner creates a planner. enabled filters providers switched off in
// configuration; nil means everything is enabled.
func NewPlanner(enabled func(lyrics.ProviderID) bool) *Planner {
	if enabled == nil {
		enabled = func(lyrics.ProviderID) bool { return true }
	}
	return &Planner{enabled: enabled}
}

// Plan resolves the provider order for a request. Precedence: a non-empty
// custom sequence is used verbatim (unknown tokens dropped with a warning);
// otherwise a timestamps request narrows to the synced set; otherwise the
// full default order applies. An empty outcome is a planning error, not a
// not-found.
func (p *Planner) Plan(req lyrics.LyricsRequest) ([]lyrics.ProviderID, error) {
	var sequence []lyrics.ProviderID

	switch {
	case len(req.CustomSequence) > 0:
		for _, token := range req.CustomSequence {
			id, ok := lyrics.ParseProviderID(token)
			if !ok {
				slog.Warn("Dropping unknown provider from custom sequence", "token", token)
				continue
			}
			sequence = append(sequence, id)
		}
	case req.WantTimestamps:
		sequence = append(sequence, defaultSyncedSequence...)
	default:
		sequence = append(sequence, lyrics.Providers...)
	}

	plan := make([]lyrics.ProviderID, 0, len(sequence))
	seen := make(map[lyrics.ProviderID]struct{}, len(sequence))
	for _, id := range sequence {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if !p.enabled(id) {
			slog.Debug("Skipping disabled provider", "provider", id)
			continue
		}
		plan = append(plan, id)
	}

	if len(plan) == 0 {
		return nil, lyrics.ErrPlanningFailed
	}
	return plan, nil
}
