package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"lyrica/src/lyrics"
)

const defaultSimpMusicBaseURL = "https://api-lyrics.simpmusic.org"

type simpMusicSearchResponse struct {
	Data []simpMusicHit `json:"data"`
}

type simpMusicHit struct {
	VideoID    string `json:"videoId"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	ArtistName string `json:"artistName"`
}

type simpMusicLyricsResponse struct {
	// the endpoint returns either one object or a list under data
	Data json.RawMessage `json:"data"`
}

type simpMusicLyrics struct {
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
	DurationMs   int    `json:"durationMs"`
}

// SimpMusicFetcher fetches lyrics from the SimpMusic community API.
type SimpMusicFetcher struct {
	client  *http.Client
	baseURL string
}

// NewSimpMusicFetcher creates a new SimpMusic adapter.
func NewSimpMusicFetcher(client *http.Client, baseURL string) *SimpMusicFetcher {
	if baseURL == "" {
		baseURL = defaultSimpMusicBaseURL
	}
	return &SimpMusicFetcher{client: client, baseURL: baseURL}
}

func (f *SimpMusicFetcher) ID() lyrics.ProviderID { return lyrics.ProviderSimpMusic }

func (f *SimpMusicFetcher) Fetch(ctx context.Context, artist, song string, timestamps bool) (*lyrics.Candidate, error) {
	searchURL := fmt.Sprintf("%s/v1/search?q=%s", f.baseURL, url.QueryEscape(song))
	var search simpMusicSearchResponse
	if err := getJSON(ctx, f.client, searchURL, &search); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("simpmusic search: %w", err)
	}
	if len(search.Data) == 0 {
		return nil, nil
	}
	hit := search.Data[0]
	videoID := hit.VideoID
	if videoID == "" {
		videoID = hit.ID
	}
	if videoID == "" {
		return nil, nil
	}

	var wrapped simpMusicLyricsResponse
	lyricsURL := fmt.Sprintf("%s/v1/%s", f.baseURL, url.PathEscape(videoID))
	if err := getJSON(ctx, f.client, lyricsURL, &wrapped); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("simpmusic lyrics: %w", err)
	}
	body, err := unwrapSimpMusicData(wrapped.Data)
	if err != nil || body == nil {
		return nil, nil
	}

	title := hit.Title
	if title == "" {
		title = song
	}
	name := hit.ArtistName
	if name == "" {
		name = artist
	}
	candidate := &lyrics.Candidate{
		Artist:     name,
		Title:      title,
		DurationMs: body.DurationMs,
	}

	if timestamps {
		if body.SyncedLyrics == "" {
			return nil, nil
		}
		candidate.TimedLines = ParseLRC(body.SyncedLyrics, body.DurationMs, "sim")
		if len(candidate.TimedLines) == 0 {
			return nil, nil
		}
		return candidate, nil
	}

	plain := body.PlainLyrics
	if plain == "" && body.SyncedLyrics != "" {
		plain = plainFromLRC(body.SyncedLyrics)
	}
	if plain == "" {
		return nil, nil
	}
	candidate.PlainText = plain
	return candidate, nil
}

// unwrapSimpMusicData tolerates both the object and the list shape.
func unwrapSimpMusicData(raw json.RawMessage) (*simpMusicLyrics, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var one simpMusicLyrics
	if err := json.Unmarshal(raw, &one); err == nil {
		return &one, nil
	}
	var many []simpMusicLyrics
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	if len(many) == 0 {
		return nil, nil
	}
	return &many[0], nil
}

// plainFromLRC strips the timing tags from a synced body.
func plainFromLRC(synced string) string {
	lines := ParseLRC(synced, 0, "tmp")
	if len(lines) == 0 {
		return ""
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, "\n")
}
