package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"lyrica/src/lyrics"
)

const defaultChartLyricsBaseURL = "http://api.chartlyrics.com"

type chartLyricsResult struct {
	XMLName     xml.Name `xml:"GetLyricResult"`
	LyricArtist string   `xml:"LyricArtist"`
	LyricSong   string   `xml:"LyricSong"`
	Lyric       string   `xml:"Lyric"`
}

// ChartLyricsFetcher fetches plain-text lyrics from the ChartLyrics SOAP
// API, which answers plain GET requests with an XML document.
type ChartLyricsFetcher struct {
	client  *http.Client
	baseURL string
}

// NewChartLyricsFetcher creates a new ChartLyrics adapter.
func NewChartLyricsFetcher(client *http.Client, baseURL string) *ChartLyricsFetcher {
	if baseURL == "" {
		baseURL = defaultChartLyricsBaseURL
	}
	return &ChartLyricsFetcher{client: client, baseURL: baseURL}
}

func (f *ChartLyricsFetcher) ID() lyrics.ProviderID { return lyrics.ProviderChartLyrics }

func (f *ChartLyricsFetcher) Fetch(ctx context.Context, artist, song string, timestamps bool) (*lyrics.Candidate, error) {
	fetchURL := fmt.Sprintf("%s/apiv1.asmx/SearchLyricDirect?artist=%s&song=%s",
		f.baseURL, url.QueryEscape(artist), url.QueryEscape(song))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("chartlyrics: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chartlyrics: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chartlyrics request failed with status %d", resp.StatusCode)
	}

	var result chartLyricsResult
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("chartlyrics parse: %w", err)
	}
	if strings.TrimSpace(result.Lyric) == "" {
		return nil, nil
	}

	title := result.LyricSong
	if title == "" {
		title = song
	}
	name := result.LyricArtist
	if name == "" {
		name = artist
	}
	return &lyrics.Candidate{
		Artist:    name,
		Title:     title,
		PlainText: result.Lyric,
	}, nil
}
