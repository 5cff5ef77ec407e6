package providers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lyrica/src/lyrics"
)

// lrcLineRe matches one synced lyric line: [mm:ss.xx]text. Some sources
// emit a ".." typo instead of "." in the fraction; the pattern tolerates it.
var lrcLineRe = regexp.MustCompile(`^\[(\d{2}):(\d{2}(?:\.{1,2}\d{1,2})?)\](.*)$`)

const defaultLineMs = 4000

// ParseLRC converts an LRC body into ordered, non-overlapping timed lines.
// Each line ends where the next begins; the last line ends at the track
// duration when known, otherwise after a fixed window. Lines with empty
// text, unparsable tags or out-of-order timestamps are dropped.
func ParseLRC(synced string, durationMs int, idPrefix string) []lyrics.LyricsLine {
	type stamped struct {
		startMs int
		text    string
	}

	var entries []stamped
	lastStart := -1
	for _, raw := range strings.Split(synced, "\n") {
		m := lrcLineRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seconds, err := strconv.ParseFloat(strings.Replace(m[2], "..", ".", 1), 64)
		if err != nil {
			continue
		}
		startMs := minutes*60*1000 + int(seconds*1000)
		text := strings.TrimSpace(m[3])
		if text == "" || startMs <= lastStart {
			continue
		}
		entries = append(entries, stamped{startMs: startMs, text: text})
		lastStart = startMs
	}

	if len(entries) == 0 {
		return nil
	}

	lines := make([]lyrics.LyricsLine, 0, len(entries))
	for i, e := range entries {
		endMs := e.startMs + defaultLineMs
		if i < len(entries)-1 {
			endMs = entries[i+1].startMs
		} else if durationMs > e.startMs {
			endMs = durationMs
		}
		lines = append(lines, lyrics.LyricsLine{
			Text:        e.text,
			StartTimeMs: e.startMs,
			EndTimeMs:   endMs,
			ID:          fmt.Sprintf("%s_%d", idPrefix, i),
		})
	}
	return lines
}
