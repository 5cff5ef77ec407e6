package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"lyrica/src/lyrics"
)

const (
	defaultYTMusicBaseURL = "https://music.youtube.com"
	ytClientName          = "WEB_REMIX"
	ytClientVersion       = "1.20240101.00.00"
	// parameter blob that narrows a search to songs
	ytSongsFilterParams = "EgWKAQIIAWoKEAoQCRADEAQQBQ%3D%3D"
)

// YouTubeMusicFetcher fetches lyrics through the YouTube Music internal
// API: a search resolves the video, the watch playlist links the lyrics
// tab, and a browse call returns the lyric body. The responses are deeply
// nested and not versioned, so the adapter scans them structurally instead
// of mirroring the whole schema.
type YouTubeMusicFetcher struct {
	client  *http.Client
	baseURL string
}

// NewYouTubeMusicFetcher creates a new YouTube Music adapter.
func NewYouTubeMusicFetcher(client *http.Client, baseURL string) *YouTubeMusicFetcher {
	if baseURL == "" {
		baseURL = defaultYTMusicBaseURL
	}
	return &YouTubeMusicFetcher{client: client, baseURL: baseURL}
}

func (f *YouTubeMusicFetcher) ID() lyrics.ProviderID { return lyrics.ProviderYouTubeMusic }

func (f *YouTubeMusicFetcher) Fetch(ctx context.Context, artist, song string, timestamps bool) (*lyrics.Candidate, error) {
	search, err := f.call(ctx, "search", map[string]any{
		"query":  song + " " + artist,
		"params": ytSongsFilterParams,
	})
	if err != nil {
		return nil, fmt.Errorf("youtube music search: %w", err)
	}
	videoID, _ := findString(search, func(key, val string) bool {
		return key == "videoId" && val != ""
	})
	if videoID == "" {
		return nil, nil
	}

	watch, err := f.call(ctx, "next", map[string]any{"videoId": videoID})
	if err != nil {
		return nil, fmt.Errorf("youtube music watch playlist: %w", err)
	}
	// lyrics tabs carry browse IDs with a fixed MPLYt prefix
	browseID, _ := findString(watch, func(_, val string) bool {
		return strings.HasPrefix(val, "MPLYt")
	})
	if browseID == "" {
		return nil, nil
	}

	browse, err := f.call(ctx, "browse", map[string]any{"browseId": browseID})
	if err != nil {
		return nil, fmt.Errorf("youtube music lyrics: %w", err)
	}

	candidate := &lyrics.Candidate{Artist: artist, Title: song}
	if timestamps {
		candidate.TimedLines = parseTimedLyricsData(browse)
		if len(candidate.TimedLines) == 0 {
			return nil, nil
		}
		return candidate, nil
	}

	candidate.PlainText = parseLyricsDescription(browse)
	if candidate.PlainText == "" {
		return nil, nil
	}
	return candidate, nil
}

// call posts one innertube request and decodes the response generically.
func (f *YouTubeMusicFetcher) call(ctx context.Context, endpoint string, fields map[string]any) (any, error) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    ytClientName,
				"clientVersion": ytClientVersion,
			},
		},
	}
	for k, v := range fields {
		payload[k] = v
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/youtubei/v1/%s", f.baseURL, endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// parseLyricsDescription extracts the plain lyric body from a browse
// response: the description runs of the musicDescriptionShelfRenderer.
func parseLyricsDescription(browse any) string {
	shelf := findMap(browse, "musicDescriptionShelfRenderer")
	if shelf == nil {
		return ""
	}
	description, _ := shelf["description"].(map[string]any)
	if description == nil {
		return ""
	}
	runs, _ := description["runs"].([]any)
	var parts []string
	for _, run := range runs {
		if m, ok := run.(map[string]any); ok {
			if text, ok := m["text"].(string); ok {
				parts = append(parts, text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// parseTimedLyricsData extracts synchronized lines from a browse response.
func parseTimedLyricsData(browse any) []lyrics.LyricsLine {
	data := findSlice(browse, "timedLyricsData")
	if data == nil {
		return nil
	}
	var lines []lyrics.LyricsLine
	lastStart := -1
	for i, item := range data {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, _ := m["lyricLine"].(string)
		text = strings.TrimSpace(text)
		cue, _ := m["cueRange"].(map[string]any)
		if text == "" || text == "♪" || cue == nil {
			continue
		}
		start := parseMillis(cue["startTimeMilliseconds"])
		end := parseMillis(cue["endTimeMilliseconds"])
		if start < 0 || end <= start || start <= lastStart {
			continue
		}
		lines = append(lines, lyrics.LyricsLine{
			Text:        text,
			StartTimeMs: start,
			EndTimeMs:   end,
			ID:          fmt.Sprintf("ytm_%d", i),
		})
		lastStart = start
	}
	// cue ranges may overlap slightly between consecutive lines
	for i := 1; i < len(lines); i++ {
		if lines[i-1].EndTimeMs > lines[i].StartTimeMs {
			lines[i-1].EndTimeMs = lines[i].StartTimeMs
		}
	}
	return lines
}

// parseMillis accepts the string and number encodings innertube uses.
func parseMillis(v any) int {
	switch n := v.(type) {
	case string:
		ms, err := strconv.Atoi(n)
		if err != nil {
			return -1
		}
		return ms
	case float64:
		return int(n)
	default:
		return -1
	}
}

// findString walks a decoded JSON tree depth-first and returns the first
// string value whose key/value pair satisfies pred.
func findString(v any, pred func(key, val string) bool) (string, bool) {
	switch node := v.(type) {
	case map[string]any:
		for key, child := range node {
			if s, ok := child.(string); ok && pred(key, s) {
				return s, true
			}
		}
		for _, child := range node {
			if s, ok := findString(child, pred); ok {
				return s, true
			}
		}
	case []any:
		for _, child := range node {
			if s, ok := findString(child, pred); ok {
				return s, true
			}
		}
	}
	return "", false
}

// findMap returns the first object stored under the given key, anywhere.
func findMap(v any, key string) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		if m, ok := node[key].(map[string]any); ok {
			return m
		}
		for _, child := range node {
			if m := findMap(child, key); m != nil {
				return m
			}
		}
	case []any:
		for _, child := range node {
			if m := findMap(child, key); m != nil {
				return m
			}
		}
	}
	return nil
}

// findSlice returns the first array stored under the given key, anywhere.
func findSlice(v any, key string) []any {
	switch node := v.(type) {
	case map[string]any:
		if s, ok := node[key].([]any); ok {
			return s
		}
		for _, child := range node {
			if s := findSlice(child, key); s != nil {
				return s
			}
		}
	case []any:
		for _, child := range node {
			if s := findSlice(child, key); s != nil {
				return s
			}
		}
	}
	return nil
}
