// Package metadata aggregates song metadata from free public sources:
// MusicBrainz, the Cover Art Archive, the iTunes Search API, the Last.fm
// song page and the Wikipedia summary API. No source requires credentials;
// every source is best-effort and the merge succeeds when at least one
// contributed.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lyrica/src/lyrics"
)

const userAgent = "Lyrica/1.0 (lyrics API)"

const maxTags = 7

// Extractor composes the per-source lookups into one merged record.
type Extractor struct {
	client *http.Client

	musicbrainzURL string
	coverArtURL    string
	itunesURL      string
	lastfmURL      string
	wikipediaURL   string
}

// NewExtractor creates an extractor against the public endpoints.
func NewExtractor(client *http.Client) *Extractor {
	return &Extractor{
		client:         client,
		musicbrainzURL: "https://musicbrainz.org/ws/2",
		coverArtURL:    "https://coverartarchive.org",
		itunesURL:      "https://itunes.apple.com",
		lastfmURL:      "https://www.last.fm",
		wikipediaURL:   "https://en.wikipedia.org/api/rest_v1",
	}
}

// Lookup merges all sources, MusicBrainz first for identity, iTunes for
// richer release details, Last.fm for popularity, Wikipedia for prose.
// It fails only when no source knows the song.
func (e *Extractor) Lookup(ctx context.Context, artist, title string) (*lyrics.SongMetadata, error) {
	meta := &lyrics.SongMetadata{}

	if recording := e.musicbrainz(ctx, artist, title); recording != nil {
		meta.Sources = append(meta.Sources, "MusicBrainz")
		meta.Title = recording.Title
		meta.MusicBrainzID = recording.ID
		meta.DurationMs = recording.Length
		if len(recording.ArtistCredit) > 0 {
			meta.Artist = recording.ArtistCredit[0].Artist.Name
		}
		for i, tag := range recording.Tags {
			if i == 5 {
				break
			}
			meta.Tags = append(meta.Tags, tag.Name)
		}
		if len(recording.Releases) > 0 {
			release := recording.Releases[0]
			meta.Album = release.Title
			meta.ReleaseDate = release.Date
			if art := e.coverArt(ctx, release.ID); art != "" {
				meta.Sources = append(meta.Sources, "Cover Art Archive")
				meta.AlbumArt = art
			}
		}
	}

	if track := e.itunes(ctx, artist, title); track != nil {
		meta.Sources = append(meta.Sources, "iTunes")
		if meta.Title == "" {
			meta.Title = track.TrackName
		}
		// iTunes tends to carry the full credited artist name
		meta.Artist = track.ArtistName
		if meta.Album == "" {
			meta.Album = track.CollectionName
		}
		if meta.ReleaseDate == "" && len(track.ReleaseDate) >= 10 {
			meta.ReleaseDate = track.ReleaseDate[:10]
		}
		if meta.DurationMs == 0 {
			meta.DurationMs = track.TrackTimeMillis
		}
		if meta.AlbumArt == "" {
			meta.AlbumArt = strings.Replace(track.ArtworkURL100, "100x100bb.jpg", "1200x1200bb.jpg", 1)
		}
		meta.Genre = track.PrimaryGenreName
		if len(meta.Tags) == 0 && track.PrimaryGenreName != "" {
			meta.Tags = []string{track.PrimaryGenreName}
		}
		meta.ITunesURL = track.TrackViewURL
	}

	if page := e.lastfm(ctx, artist, title); page != nil {
		meta.Sources = append(meta.Sources, "Last.fm")
		meta.Playcount = page.playcount
		meta.Listeners = page.listeners
		if len(meta.Tags) == 0 {
			meta.Tags = page.tags
		}
		if meta.Album == "" {
			meta.Album = page.album
		}
		meta.LastFmURL = page.url
	}

	if summary := e.wikipedia(ctx, title); summary != nil {
		meta.Sources = append(meta.Sources, "Wikipedia")
		meta.Description = summary.Extract
		meta.WikiURL = summary.ContentURLs.Desktop.Page
	}

	if len(meta.Sources) == 0 {
		return nil, fmt.Errorf("no metadata found for '%s' by '%s'", title, artist)
	}

	if meta.Title == "" {
		meta.Title = title
	}
	if meta.Artist == "" {
		meta.Artist = artist
	}
	meta.Popularity = popularityScore(meta.Listeners)
	return meta, nil
}

// popularityScore maps a listener count onto a 0..100 scale, sublinear so
// mid-sized songs are not crushed by the megahits.
func popularityScore(listeners int) int {
	if listeners <= 0 {
		return 0
	}
	score := int(math.Sqrt(float64(listeners)/10000) * 10)
	if score > 100 {
		score = 100
	}
	return score
}

type mbRecording struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Length       int    `json:"length"`
	ArtistCredit []struct {
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"artist-credit"`
	Releases []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Date  string `json:"date"`
	} `json:"releases"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

func (e *Extractor) musicbrainz(ctx context.Context, artist, song string) *mbRecording {
	query := url.QueryEscape(fmt.Sprintf(`"%s" AND artist:"%s"`, song, artist))
	lookupURL := fmt.Sprintf("%s/recording?query=%s&fmt=json&limit=1&inc=%s",
		e.musicbrainzURL, query, url.QueryEscape("tags+releases+artist-credits"))

	var response struct {
		Recordings []mbRecording `json:"recordings"`
	}
	if err := e.getJSON(ctx, lookupURL, &response); err != nil {
		slog.Warn("MusicBrainz lookup failed", "artist", artist, "song", song, "error", err)
		return nil
	}
	if len(response.Recordings) == 0 {
		return nil
	}
	return &response.Recordings[0]
}

// coverArt probes the Cover Art Archive front image for a release.
func (e *Extractor) coverArt(ctx context.Context, releaseID string) string {
	if releaseID == "" {
		return ""
	}
	artURL := fmt.Sprintf("%s/release/%s/front", e.coverArtURL, releaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := e.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return artURL
}

type itunesTrack struct {
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	ArtworkURL100    string `json:"artworkUrl100"`
	ReleaseDate      string `json:"releaseDate"`
	TrackTimeMillis  int    `json:"trackTimeMillis"`
	PrimaryGenreName string `json:"primaryGenreName"`
	TrackViewURL     string `json:"trackViewUrl"`
}

func (e *Extractor) itunes(ctx context.Context, artist, song string) *itunesTrack {
	searchURL := fmt.Sprintf("%s/search?term=%s&entity=song&limit=1",
		e.itunesURL, url.QueryEscape(artist+" "+song))

	var response struct {
		ResultCount int           `json:"resultCount"`
		Results     []itunesTrack `json:"results"`
	}
	if err := e.getJSON(ctx, searchURL, &response); err != nil {
		slog.Warn("iTunes lookup failed", "artist", artist, "song", song, "error", err)
		return nil
	}
	if response.ResultCount == 0 || len(response.Results) == 0 {
		return nil
	}
	return &response.Results[0]
}

type lastfmPage struct {
	playcount int
	listeners int
	tags      []string
	album     string
	url       string
}

// lastfm scrapes the public song page; the site has no keyless API.
func (e *Extractor) lastfm(ctx context.Context, artist, song string) *lastfmPage {
	pageURL := fmt.Sprintf("%s/music/%s/_/%s",
		e.lastfmURL, url.PathEscape(artist), url.PathEscape(song))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := e.client.Do(req)
	if err != nil {
		slog.Warn("Last.fm scrape failed", "artist", artist, "song", song, "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	page := &lastfmPage{url: pageURL}
	page.listeners = scrapeCount(doc, `li[data-analytics-label="listener_count"] .metadata-display`)
	page.playcount = scrapeCount(doc, `li[data-analytics-label="scrobble_count"] .metadata-display`)
	doc.Find(".tags-list--global a").EachWithBreak(func(i int, tag *goquery.Selection) bool {
		page.tags = append(page.tags, strings.TrimSpace(tag.Text()))
		return i < maxTags-1
	})
	page.album = strings.TrimSpace(doc.Find(".header-metadata-title a").First().Text())

	if page.listeners == 0 && page.playcount == 0 && len(page.tags) == 0 {
		return nil
	}
	return page
}

func scrapeCount(doc *goquery.Document, selector string) int {
	text := strings.TrimSpace(doc.Find(selector).First().Text())
	text = strings.ReplaceAll(text, ",", "")
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}

type wikiSummary struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// wikipedia tries the "(song)" disambiguated page first, then the bare
// title.
func (e *Extractor) wikipedia(ctx context.Context, song string) *wikiSummary {
	for _, title := range []string{song + " (song)", song} {
		summaryURL := fmt.Sprintf("%s/page/summary/%s", e.wikipediaURL, url.PathEscape(title))
		var summary wikiSummary
		if err := e.getJSON(ctx, summaryURL, &summary); err != nil {
			continue
		}
		if summary.Extract != "" {
			return &summary
		}
	}
	return nil
}

func (e *Extractor) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
