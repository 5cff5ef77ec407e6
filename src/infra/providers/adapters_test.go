package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lyrica/src/lyrics"
)

var (
	_ lyrics.Fetcher = (*GeniusFetcher)(nil)
	_ lyrics.Fetcher = (*SimpMusicFetcher)(nil)
	_ lyrics.Fetcher = (*YouTubeMusicFetcher)(nil)
	_ lyrics.Fetcher = (*LyricsOvhFetcher)(nil)
	_ lyrics.Fetcher = (*ChartLyricsFetcher)(nil)
)

func TestLyricsOvhFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/Coldplay/Yellow" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"lyrics": "Look at the stars\nLook how they shine for you"}`)
	}))
	defer server.Close()

	fetcher := NewLyricsOvhFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Coldplay", "Yellow", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || candidate.PlainText == "" {
		t.Fatalf("expected plain lyrics, got %+v", candidate)
	}
	if candidate.Artist != "Coldplay" || candidate.Title != "Yellow" {
		t.Errorf("identity not echoed: %+v", candidate)
	}
}

func TestLyricsOvhNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewLyricsOvhFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err != nil || candidate != nil {
		t.Errorf("404 must be a clean no-result, got %+v / %v", candidate, err)
	}
}

func TestChartLyricsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?>
<GetLyricResult xmlns="http://api.chartlyrics.com/">
  <LyricArtist>Queen</LyricArtist>
  <LyricSong>Bohemian Rhapsody</LyricSong>
  <Lyric>Is this the real life?
Is this just fantasy?</Lyric>
</GetLyricResult>`)
	}))
	defer server.Close()

	fetcher := NewChartLyricsFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "queen", "bohemian rhapsody", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || candidate.PlainText == "" {
		t.Fatalf("expected lyrics, got %+v", candidate)
	}
	if candidate.Artist != "Queen" || candidate.Title != "Bohemian Rhapsody" {
		t.Errorf("expected upstream identity, got %+v", candidate)
	}
}

func TestChartLyricsEmptyLyricIsNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?>
<GetLyricResult xmlns="http://api.chartlyrics.com/"><Lyric></Lyric></GetLyricResult>`)
	}))
	defer server.Close()

	fetcher := NewChartLyricsFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err != nil || candidate != nil {
		t.Errorf("empty lyric must be a no-result, got %+v / %v", candidate, err)
	}
}

func TestSimpMusicFetchSynced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/search":
			fmt.Fprint(w, `{"data":[{"videoId":"abc123","title":"Tum Hi Ho","artistName":"Arijit Singh"}]}`)
		case "/v1/abc123":
			fmt.Fprint(w, `{"data":{"syncedLyrics":"[00:24.00]Hum tere bin ab reh nahi sakte\n[00:29.50]Tere bina kya wajood mera","plainLyrics":""}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewSimpMusicFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Arijit Singh", "Tum Hi Ho", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || len(candidate.TimedLines) != 2 {
		t.Fatalf("expected 2 timed lines, got %+v", candidate)
	}
	if candidate.Title != "Tum Hi Ho" || candidate.Artist != "Arijit Singh" {
		t.Errorf("identity not taken from the search hit: %+v", candidate)
	}
}

func TestSimpMusicListShapedLyricsData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/search":
			fmt.Fprint(w, `{"data":[{"id":"xyz"}]}`)
		case "/v1/xyz":
			fmt.Fprint(w, `{"data":[{"plainLyrics":"from the list shape"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewSimpMusicFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || candidate.PlainText != "from the list shape" {
		t.Errorf("expected lyrics from list-shaped payload, got %+v", candidate)
	}
}

func TestGeniusFetchScrapesSongPage(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
				t.Errorf("missing bearer token, got %q", auth)
			}
			fmt.Fprintf(w, `{"response":{"hits":[{"result":{"title":"Yellow","url":"%s/songs/yellow","primary_artist":{"name":"Coldplay"}}}]}}`, server.URL)
		case "/songs/yellow":
			fmt.Fprint(w, `<html><body>
<div data-lyrics-container="true">Look at the stars<br>Look how they shine for you</div>
<div data-lyrics-container="true">And everything you do</div>
</body></html>`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewGeniusFetcher(server.Client(), "test-token", server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Coldplay", "Yellow", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil {
		t.Fatal("expected a candidate")
	}
	if candidate.Artist != "Coldplay" || candidate.Title != "Yellow" {
		t.Errorf("identity not taken from the API hit: %+v", candidate)
	}
	want := "Look at the stars\nLook how they shine for you\nAnd everything you do"
	if candidate.PlainText != want {
		t.Errorf("scrape mismatch:\nwant %q\ngot  %q", want, candidate.PlainText)
	}
}

func TestGeniusWithoutTokenIsNoResult(t *testing.T) {
	fetcher := NewGeniusFetcher(http.DefaultClient, "", "")
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err != nil || candidate != nil {
		t.Errorf("tokenless adapter must return no result, got %+v / %v", candidate, err)
	}
}

func TestYouTubeMusicFetchTimed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtubei/v1/search":
			fmt.Fprint(w, `{"contents":{"sectionListRenderer":{"contents":[{"musicShelfRenderer":{"contents":[{"musicResponsiveListItemRenderer":{"playlistItemData":{"videoId":"vid42"}}}]}}]}}}`)
		case "/youtubei/v1/next":
			fmt.Fprint(w, `{"contents":{"tabs":[{"tabRenderer":{"title":"Lyrics","endpoint":{"browseEndpoint":{"browseId":"MPLYt_vid42"}}}}]}}`)
		case "/youtubei/v1/browse":
			fmt.Fprint(w, `{"lyricsData":{"timedLyricsData":[
{"lyricLine":"first line","cueRange":{"startTimeMilliseconds":"1000","endTimeMilliseconds":"3000"}},
{"lyricLine":"second line","cueRange":{"startTimeMilliseconds":"3000","endTimeMilliseconds":"6000"}}
]}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewYouTubeMusicFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || len(candidate.TimedLines) != 2 {
		t.Fatalf("expected 2 timed lines, got %+v", candidate)
	}
	if err := candidate.ValidateLines(); err != nil {
		t.Errorf("lines violate ordering invariant: %v", err)
	}
}

func TestYouTubeMusicFetchPlain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtubei/v1/search":
			fmt.Fprint(w, `{"videoId":"vid42"}`)
		case "/youtubei/v1/next":
			fmt.Fprint(w, `{"lyrics":"MPLYt_vid42"}`)
		case "/youtubei/v1/browse":
			fmt.Fprint(w, `{"contents":{"musicDescriptionShelfRenderer":{"description":{"runs":[{"text":"plain lyric body"}]}}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewYouTubeMusicFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || candidate.PlainText != "plain lyric body" {
		t.Errorf("expected plain lyrics, got %+v", candidate)
	}
}

func TestYouTubeMusicNoLyricsTab(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtubei/v1/search":
			fmt.Fprint(w, `{"videoId":"vid42"}`)
		case "/youtubei/v1/next":
			fmt.Fprint(w, `{"contents":{}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewYouTubeMusicFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err != nil || candidate != nil {
		t.Errorf("missing lyrics tab must be a no-result, got %+v / %v", candidate, err)
	}
}
