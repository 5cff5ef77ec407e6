package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"lyrica/src/lyrics"
)

const defaultLRCLIBBaseURL = "https://lrclib.net"

type lrclibTrack struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLIBFetcher fetches lyrics from the LRCLIB API.
type LRCLIBFetcher struct {
	client  *http.Client
	baseURL string
}

// NewLRCLIBFetcher creates a new LRCLIB adapter. baseURL overrides the
// public endpoint, empty means the default.
func NewLRCLIBFetcher(client *http.Client, baseURL string) *LRCLIBFetcher {
	if baseURL == "" {
		baseURL = defaultLRCLIBBaseURL
	}
	return &LRCLIBFetcher{client: client, baseURL: baseURL}
}

func (f *LRCLIBFetcher) ID() lyrics.ProviderID { return lyrics.ProviderLRCLIB }

// Fetch searches for the track, then retrieves its full record. With
// timestamps requested a track without synced lyrics counts as no result.
func (f *LRCLIBFetcher) Fetch(ctx context.Context, artist, song string, timestamps bool) (*lyrics.Candidate, error) {
	searchURL := fmt.Sprintf("%s/api/search?track_name=%s&artist_name=%s",
		f.baseURL, url.QueryEscape(song), url.QueryEscape(artist))

	var results []lrclibTrack
	if err := getJSON(ctx, f.client, searchURL, &results); err != nil {
		return nil, fmt.Errorf("lrclib search: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	hit := results[0]

	getURL := fmt.Sprintf("%s/api/get?track_name=%s&artist_name=%s&album_name=%s&duration=%d",
		f.baseURL, url.QueryEscape(hit.TrackName), url.QueryEscape(hit.ArtistName),
		url.QueryEscape(hit.AlbumName), int(hit.Duration))

	var track lrclibTrack
	if err := getJSON(ctx, f.client, getURL, &track); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lrclib get: %w", err)
	}

	candidate := &lyrics.Candidate{
		Artist:     track.ArtistName,
		Title:      track.TrackName,
		Album:      track.AlbumName,
		DurationMs: int(track.Duration * 1000),
	}

	if timestamps {
		if track.SyncedLyrics == "" {
			return nil, nil
		}
		candidate.TimedLines = ParseLRC(track.SyncedLyrics, candidate.DurationMs, "lrc")
		if len(candidate.TimedLines) == 0 {
			return nil, nil
		}
		return candidate, nil
	}

	if track.PlainLyrics == "" {
		return nil, nil
	}
	candidate.PlainText = track.PlainLyrics
	return candidate, nil
}
