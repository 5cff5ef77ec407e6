package enriching

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lyrica/src/lyrics"
)

// MetadataLookup is the external collaborator that resolves song metadata
// by artist and title, independent of which lyric provider won.
type MetadataLookup interface {
	Lookup(ctx context.Context, artist, title string) (*lyrics.SongMetadata, error)
}

// Pipeline runs the optional enrichment steps over a winning resolution.
type Pipeline struct {
	metadata        MetadataLookup
	metadataTimeout time.Duration
}

// NewPipeline creates a pipeline. metadata may be nil, in which case
// metadata requests degrade to an absent field.
func NewPipeline(metadata MetadataLookup, metadataTimeout time.Duration) *Pipeline {
	return &Pipeline{metadata: metadata, metadataTimeout: metadataTimeout}
}

// Enrich fills the Mood and Metadata fields of result according to the
// request flags. The two steps are independent and run concurrently; a
// failure in either leaves its field nil and never propagates. The caller
// owns result and must not hand in a shared (cached) instance.
func (p *Pipeline) Enrich(ctx context.Context, req lyrics.LyricsRequest, result *lyrics.ResolutionResult) {
	var wg sync.WaitGroup

	if req.WantMood {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Mood analysis panicked", "artist", req.Artist, "song", req.Song, "panic", r)
				}
			}()
			result.Mood = AnalyzeMood(result.Text())
		}()
	}

	if req.WantMetadata && p.metadata != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lookupCtx, cancel := context.WithTimeout(ctx, p.metadataTimeout)
			defer cancel()
			meta, err := p.metadata.Lookup(lookupCtx, req.Artist, req.Song)
			if err != nil {
				slog.Warn("Metadata lookup failed, returning result without metadata",
					"artist", req.Artist, "song", req.Song, "error", err)
				return
			}
			result.Metadata = meta
		}()
	}

	wg.Wait()
}
