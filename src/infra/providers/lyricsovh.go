package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"lyrica/src/lyrics"
)

const defaultLyricsOvhBaseURL = "https://api.lyrics.ovh"

type lyricsOvhResponse struct {
	Lyrics string `json:"lyrics"`
}

// LyricsOvhFetcher fetches plain-text lyrics from the Lyrics.ovh API.
type LyricsOvhFetcher struct {
	client  *http.Client
	baseURL string
}

// NewLyricsOvhFetcher creates a new Lyrics.ovh adapter.
func NewLyricsOvhFetcher(client *http.Client, baseURL string) *LyricsOvhFetcher {
	if baseURL == "" {
		baseURL = defaultLyricsOvhBaseURL
	}
	return &LyricsOvhFetcher{client: client, baseURL: baseURL}
}

func (f *LyricsOvhFetcher) ID() lyrics.ProviderID { return lyrics.ProviderLyricsOvh }

func (f *LyricsOvhFetcher) Fetch(ctx context.Context, artist, song string, timestamps bool) (*lyrics.Candidate, error) {
	fetchURL := fmt.Sprintf("%s/v1/%s/%s", f.baseURL, url.PathEscape(artist), url.PathEscape(song))

	var body lyricsOvhResponse
	if err := getJSON(ctx, f.client, fetchURL, &body); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lyrics.ovh: %w", err)
	}
	if strings.TrimSpace(body.Lyrics) == "" {
		return nil, nil
	}

	return &lyrics.Candidate{
		Artist:    artist,
		Title:     song,
		PlainText: body.Lyrics,
	}, nil
}
