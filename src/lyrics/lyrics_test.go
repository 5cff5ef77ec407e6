package lyrics

import (
	"testing"
	"time"
)

func TestFingerprintNormalization(t *testing.T) {
	a := LyricsRequest{Artist: "  The Beatles ", Song: "Let  It Be", WantTimestamps: true}
	b := LyricsRequest{Artist: "the beatles", Song: "let it be", WantTimestamps: true}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("case and whitespace differences should not change the fingerprint")
	}
}

func TestFingerprintIgnoresStrategyFlags(t *testing.T) {
	base := LyricsRequest{Artist: "Arijit Singh", Song: "Tum Hi Ho"}
	fast := base
	fast.FastMode = true
	fast.WantMood = true
	fast.WantMetadata = true
	fast.CustomSequence = []string{"3", "5"}
	if base.Fingerprint() != fast.Fingerprint() {
		t.Error("fast mode, custom sequence and enrichment flags must not affect the fingerprint")
	}
}

func TestFingerprintSeparatesTimestampPools(t *testing.T) {
	plain := LyricsRequest{Artist: "a", Song: "b"}
	synced := LyricsRequest{Artist: "a", Song: "b", WantTimestamps: true}
	if plain.Fingerprint() == synced.Fingerprint() {
		t.Error("timestamps flag changes the result shape and must change the fingerprint")
	}
}

func TestParseProviderID(t *testing.T) {
	cases := []struct {
		token string
		want  ProviderID
		ok    bool
	}{
		{"2", ProviderLRCLIB, true},
		{"6", ProviderChartLyrics, true},
		{"lrclib", ProviderLRCLIB, true},
		{" Genius ", ProviderGenius, true},
		{"7", "", false},
		{"0", "", false},
		{"spotify", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseProviderID(tc.token)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseProviderID(%q) = (%q, %t), want (%q, %t)", tc.token, got, ok, tc.want, tc.ok)
		}
	}
}

func TestValidateLines(t *testing.T) {
	good := &Candidate{TimedLines: []LyricsLine{
		{Text: "one", StartTimeMs: 0, EndTimeMs: 5200},
		{Text: "two", StartTimeMs: 5200, EndTimeMs: 10400},
	}}
	if err := good.ValidateLines(); err != nil {
		t.Fatalf("valid lines rejected: %v", err)
	}

	overlapping := &Candidate{TimedLines: []LyricsLine{
		{Text: "one", StartTimeMs: 0, EndTimeMs: 6000},
		{Text: "two", StartTimeMs: 5200, EndTimeMs: 10400},
	}}
	if err := overlapping.ValidateLines(); err == nil {
		t.Error("overlapping lines accepted")
	}

	inverted := &Candidate{TimedLines: []LyricsLine{
		{Text: "one", StartTimeMs: 5000, EndTimeMs: 4000},
	}}
	if err := inverted.ValidateLines(); err == nil {
		t.Error("end before start accepted")
	}
}

func TestResultFromCandidatePicksOneForm(t *testing.T) {
	c := &Candidate{
		Source:    ProviderLRCLIB,
		Artist:    "Arijit Singh",
		Title:     "Tum Hi Ho",
		PlainText: "Hum tere bin\nTere bina",
		TimedLines: []LyricsLine{
			{Text: "Hum tere bin", StartTimeMs: 0, EndTimeMs: 5200},
			{Text: "Tere bina", StartTimeMs: 5200, EndTimeMs: 10400},
		},
	}

	synced := ResultFromCandidate(c, true, time.Now())
	if !synced.HasTimestamps || len(synced.TimedLines) != 2 || synced.PlainText != "" {
		t.Error("timestamped request should produce the timed form only")
	}

	plain := ResultFromCandidate(c, false, time.Now())
	if plain.HasTimestamps || plain.PlainText == "" || plain.TimedLines != nil {
		t.Error("plain request should produce the plain form only")
	}
}
