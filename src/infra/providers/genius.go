package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lyrica/src/lyrics"
)

const defaultGeniusBaseURL = "https://api.genius.com"

type geniusSearchResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				Title string `json:"title"`
				URL   string `json:"url"`
				Primary struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// GeniusFetcher fetches lyrics from Genius: the API locates the song page,
// the page itself carries the lyric text.
type GeniusFetcher struct {
	client  *http.Client
	token   string
	baseURL string
}

// NewGeniusFetcher creates a new Genius adapter. An empty token disables
// the adapter: every Fetch returns no results.
func NewGeniusFetcher(client *http.Client, token, baseURL string) *GeniusFetcher {
	if baseURL == "" {
		baseURL = defaultGeniusBaseURL
	}
	return &GeniusFetcher{client: client, token: token, baseURL: baseURL}
}

func (f *GeniusFetcher) ID() lyrics.ProviderID { return lyrics.ProviderGenius }

func (f *GeniusFetcher) Fetch(ctx context.Context, artist, song string, timestamps bool) (*lyrics.Candidate, error) {
	if f.token == "" {
		return nil, nil
	}

	query := url.QueryEscape(song + " " + artist)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/search?q=%s", f.baseURL, query), nil)
	if err != nil {
		return nil, fmt.Errorf("genius search: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genius search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genius search failed with status %d", resp.StatusCode)
	}

	var search geniusSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("genius search: %w", err)
	}
	if len(search.Response.Hits) == 0 {
		return nil, nil
	}
	hit := search.Response.Hits[0].Result

	text, err := f.scrapeLyrics(ctx, hit.URL)
	if err != nil {
		return nil, fmt.Errorf("genius page: %w", err)
	}
	if text == "" {
		return nil, nil
	}

	return &lyrics.Candidate{
		Artist:    hit.Primary.Name,
		Title:     hit.Title,
		PlainText: text,
	}, nil
}

// scrapeLyrics extracts the lyric text from a Genius song page.
func (f *GeniusFetcher) scrapeLyrics(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page request failed with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	var parts []string
	doc.Find(`div[data-lyrics-container="true"]`).Each(func(_ int, container *goquery.Selection) {
		// line breaks inside the container separate lyric lines
		container.Find("br").ReplaceWithHtml("\n")
		parts = append(parts, container.Text())
	})
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}
