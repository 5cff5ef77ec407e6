package lyrics

import (
	"fmt"
	"strings"
	"time"
)

// LyricsRequest is one caller query, immutable once constructed.
type LyricsRequest struct {
	Artist         string
	Song           string
	WantTimestamps bool
	WantMood       bool
	WantMetadata   bool
	FastMode       bool
	CustomSequence []string // raw sequence tokens, numeric or named
}

// Validate checks the caller-supplied identity fields.
func (r LyricsRequest) Validate() error {
	if strings.TrimSpace(r.Artist) == "" || strings.TrimSpace(r.Song) == "" {
		return ErrMissingParameters
	}
	return nil
}

// Outcome classifies one provider attempt.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeNoResults Outcome = "no_results"
	OutcomeError     Outcome = "error"
)

// AttemptRecord is one entry of the audit trail built during a resolution.
type AttemptRecord struct {
	Provider ProviderID `json:"api"`
	Outcome  Outcome    `json:"status"`
	Message  string     `json:"message,omitempty"`
}

// LyricsLine is a single synchronized lyric line. Within one result lines
// are ordered by StartTimeMs and non-overlapping.
type LyricsLine struct {
	Text        string `json:"text"`
	StartTimeMs int    `json:"start_time"`
	EndTimeMs   int    `json:"end_time"`
	ID          string `json:"id"`
}

// Candidate is what a provider adapter hands back on success, before
// enrichment. Exactly one of PlainText / TimedLines is populated.
type Candidate struct {
	Source     ProviderID
	Artist     string
	Title      string
	Album      string
	DurationMs int
	PlainText  string
	TimedLines []LyricsLine
}

// HasTimestamps reports whether the candidate carries synchronized lines.
func (c *Candidate) HasTimestamps() bool {
	return len(c.TimedLines) > 0
}

// Text returns the lyric body as plain text regardless of form.
func (c *Candidate) Text() string {
	if c.PlainText != "" {
		return c.PlainText
	}
	parts := make([]string, 0, len(c.TimedLines))
	for _, line := range c.TimedLines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}

// ValidateLines checks the ordering invariant on timed lines:
// starts strictly increasing and end_i <= start_{i+1}.
func (c *Candidate) ValidateLines() error {
	for i, line := range c.TimedLines {
		if line.StartTimeMs < 0 {
			return fmt.Errorf("line %d: negative start time %d", i, line.StartTimeMs)
		}
		if line.EndTimeMs <= line.StartTimeMs {
			return fmt.Errorf("line %d: end %d not after start %d", i, line.EndTimeMs, line.StartTimeMs)
		}
		if i > 0 {
			prev := c.TimedLines[i-1]
			if line.StartTimeMs < prev.StartTimeMs {
				return fmt.Errorf("line %d: start %d before previous start %d", i, line.StartTimeMs, prev.StartTimeMs)
			}
			if prev.EndTimeMs > line.StartTimeMs {
				return fmt.Errorf("line %d: overlaps previous line (end %d > start %d)", i, prev.EndTimeMs, line.StartTimeMs)
			}
		}
	}
	return nil
}

// MoodAnalysis is the sentiment summary computed over the lyric text.
type MoodAnalysis struct {
	Polarity     float64     `json:"polarity"`
	Subjectivity float64     `json:"subjectivity"`
	Mood         string      `json:"mood"`
	MoodStrength string      `json:"mood_strength"`
	OverallMood  string      `json:"overall_mood"`
	Confidence   float64     `json:"confidence"`
	TopWords     []WordCount `json:"top_words,omitempty"`
}

// WordCount is one frequent non-stopword with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"frequency"`
}

// SongMetadata is the external metadata attached to a resolution.
type SongMetadata struct {
	Title         string   `json:"title,omitempty"`
	Artist        string   `json:"artist,omitempty"`
	Album         string   `json:"album,omitempty"`
	AlbumArt      string   `json:"album_art,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	DurationMs    int      `json:"duration_ms,omitempty"`
	Genre         string   `json:"genre,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`
	Playcount     int      `json:"playcount,omitempty"`
	Listeners     int      `json:"listeners,omitempty"`
	Popularity    int      `json:"popularity"`
	MusicBrainzID string   `json:"musicbrainz_id,omitempty"`
	ITunesURL     string   `json:"itunes_url,omitempty"`
	LastFmURL     string   `json:"lastfm_url,omitempty"`
	WikiURL       string   `json:"wiki_url,omitempty"`
	Sources       []string `json:"sources,omitempty"`
}

// ResolutionResult is the winning lyric result plus optional enrichment.
// Exactly one of PlainText / TimedLines is set; HasTimestamps agrees with
// which one. Shared read-only once created.
type ResolutionResult struct {
	Source        ProviderID    `json:"source"`
	Artist        string        `json:"artist"`
	Title         string        `json:"title"`
	Album         string        `json:"album,omitempty"`
	PlainText     string        `json:"lyrics,omitempty"`
	TimedLines    []LyricsLine  `json:"timed_lyrics,omitempty"`
	HasTimestamps bool          `json:"hasTimestamps"`
	Mood          *MoodAnalysis `json:"mood_analysis,omitempty"`
	Metadata      *SongMetadata `json:"metadata,omitempty"`
	ResolvedAt    time.Time     `json:"timestamp"`
}

// ResultFromCandidate freezes a winning candidate into a result. When the
// caller asked for timestamps and the candidate has them, the timed form
// wins; otherwise plain text is kept.
func ResultFromCandidate(c *Candidate, wantTimestamps bool, now time.Time) *ResolutionResult {
	res := &ResolutionResult{
		Source:     c.Source,
		Artist:     c.Artist,
		Title:      c.Title,
		Album:      c.Album,
		ResolvedAt: now.UTC(),
	}
	if wantTimestamps && c.HasTimestamps() {
		res.TimedLines = c.TimedLines
		res.HasTimestamps = true
	} else {
		res.PlainText = c.Text()
	}
	return res
}

// Text returns the lyric body of a result as plain text.
func (r *ResolutionResult) Text() string {
	if r.PlainText != "" {
		return r.PlainText
	}
	parts := make([]string, 0, len(r.TimedLines))
	for _, line := range r.TimedLines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}
