package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lyrica/src/lyrics"
)

func newLRCLIBServer(t *testing.T, track lrclibTrack, found bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/search":
			if !found {
				json.NewEncoder(w).Encode([]lrclibTrack{})
				return
			}
			json.NewEncoder(w).Encode([]lrclibTrack{track})
		case "/api/get":
			if !found {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(track)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLRCLIBFetchSynced(t *testing.T) {
	track := lrclibTrack{
		TrackName:    "Tum Hi Ho",
		ArtistName:   "Arijit Singh",
		AlbumName:    "Aashiqui 2",
		Duration:     262,
		PlainLyrics:  "Hum tere bin ab reh nahi sakte\nTere bina kya wajood mera",
		SyncedLyrics: "[00:24.00]Hum tere bin ab reh nahi sakte\n[00:29.50]Tere bina kya wajood mera",
	}
	server := newLRCLIBServer(t, track, true)
	defer server.Close()

	fetcher := NewLRCLIBFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Arijit Singh", "Tum Hi Ho", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil {
		t.Fatal("expected a candidate")
	}
	if !candidate.HasTimestamps() || len(candidate.TimedLines) != 2 {
		t.Fatalf("expected 2 timed lines, got %+v", candidate)
	}
	if candidate.PlainText != "" {
		t.Error("timed candidate must not also carry plain text")
	}
	if candidate.Album != "Aashiqui 2" || candidate.DurationMs != 262000 {
		t.Errorf("metadata not carried over: %+v", candidate)
	}
	if err := candidate.ValidateLines(); err != nil {
		t.Errorf("lines violate ordering invariant: %v", err)
	}
}

func TestLRCLIBFetchPlain(t *testing.T) {
	track := lrclibTrack{
		TrackName:   "Song",
		ArtistName:  "Artist",
		PlainLyrics: "some plain lyrics",
	}
	server := newLRCLIBServer(t, track, true)
	defer server.Close()

	fetcher := NewLRCLIBFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Artist", "Song", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate == nil || candidate.PlainText != "some plain lyrics" {
		t.Errorf("expected plain lyrics, got %+v", candidate)
	}
}

func TestLRCLIBSyncedRequestWithoutSyncedLyricsIsNoResult(t *testing.T) {
	track := lrclibTrack{
		TrackName:   "Song",
		ArtistName:  "Artist",
		PlainLyrics: "plain only",
	}
	server := newLRCLIBServer(t, track, true)
	defer server.Close()

	fetcher := NewLRCLIBFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Artist", "Song", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate != nil {
		t.Errorf("expected no result, got %+v", candidate)
	}
}

func TestLRCLIBNoSearchResults(t *testing.T) {
	server := newLRCLIBServer(t, lrclibTrack{}, false)
	defer server.Close()

	fetcher := NewLRCLIBFetcher(server.Client(), server.URL)
	candidate, err := fetcher.Fetch(context.Background(), "Unknown Artist", "Nonexistent Song", false)
	if err != nil {
		t.Fatalf("empty search must not be an error: %v", err)
	}
	if candidate != nil {
		t.Errorf("expected no result, got %+v", candidate)
	}
}

func TestLRCLIBUpstreamFailureIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewLRCLIBFetcher(server.Client(), server.URL)
	_, err := fetcher.Fetch(context.Background(), "a", "b", false)
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

var _ lyrics.Fetcher = (*LRCLIBFetcher)(nil)
