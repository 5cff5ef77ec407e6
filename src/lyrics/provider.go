package lyrics

import (
	"context"
	"strconv"
	"strings"
)

// ProviderID identifies one external lyrics source.
type ProviderID string

const (
	ProviderGenius       ProviderID = "genius"
	ProviderLRCLIB       ProviderID = "lrclib"
	ProviderSimpMusic    ProviderID = "simpmusic"
	ProviderYouTubeMusic ProviderID = "youtube_music"
	ProviderLyricsOvh    ProviderID = "lyrics.ovh"
	ProviderChartLyrics  ProviderID = "chartlyrics"
)

// SpeedClass is a rough latency expectation for a provider.
type SpeedClass string

const (
	SpeedFast   SpeedClass = "fast"
	SpeedMedium SpeedClass = "medium"
	SpeedSlow   SpeedClass = "slow"
)

// Capability describes what a provider can return.
type Capability struct {
	Index      int // user-facing numeric ID, stable across releases
	Display    string
	PlainText  bool
	Timestamps bool
	Speed      SpeedClass
}

// Providers is the closed set of known providers in default plain-text
// priority order: Genius first for quality, then the synced sources,
// then the plain-text fallbacks.
var Providers = []ProviderID{
	ProviderGenius,
	ProviderLRCLIB,
	ProviderSimpMusic,
	ProviderYouTubeMusic,
	ProviderLyricsOvh,
	ProviderChartLyrics,
}

var capabilities = map[ProviderID]Capability{
	ProviderGenius:       {Index: 1, Display: "Genius", PlainText: true, Timestamps: false, Speed: SpeedSlow},
	ProviderLRCLIB:       {Index: 2, Display: "LRCLIB", PlainText: true, Timestamps: true, Speed: SpeedFast},
	ProviderSimpMusic:    {Index: 3, Display: "SimpMusic", PlainText: true, Timestamps: true, Speed: SpeedFast},
	ProviderYouTubeMusic: {Index: 4, Display: "YouTube Music", PlainText: true, Timestamps: true, Speed: SpeedMedium},
	ProviderLyricsOvh:    {Index: 5, Display: "Lyrics.ovh", PlainText: true, Timestamps: false, Speed: SpeedMedium},
	ProviderChartLyrics:  {Index: 6, Display: "ChartLyrics", PlainText: true, Timestamps: false, Speed: SpeedMedium},
}

// Capabilities returns the capability flags for a provider.
func (id ProviderID) Capabilities() Capability {
	return capabilities[id]
}

// Display returns the human-readable provider name.
func (id ProviderID) Display() string {
	return capabilities[id].Display
}

// Known reports whether id belongs to the provider set.
func (id ProviderID) Known() bool {
	_, ok := capabilities[id]
	return ok
}

// ParseProviderID resolves a single sequence token: either a numeric index
// ("3") or a provider name ("simpmusic"). Returns false for unknown tokens.
func ParseProviderID(token string) (ProviderID, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", false
	}
	if n, err := strconv.Atoi(token); err == nil {
		for id, cap := range capabilities {
			if cap.Index == n {
				return id, true
			}
		}
		return "", false
	}
	id := ProviderID(token)
	if id.Known() {
		return id, true
	}
	return "", false
}

// Fetcher is the uniform contract every provider adapter satisfies.
// A (nil, nil) return means the provider understood the query but has no
// matching song. Adapters perform a single outbound attempt per call and
// must honor ctx cancellation and deadlines; retry policy belongs to the
// orchestrator.
type Fetcher interface {
	ID() ProviderID
	Fetch(ctx context.Context, artist, song string, timestamps bool) (*Candidate, error)
}
