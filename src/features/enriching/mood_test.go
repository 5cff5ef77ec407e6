package enriching

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"lyrica/src/lyrics"
)

func TestAnalyzeMoodPositive(t *testing.T) {
	mood := AnalyzeMood("I love the beautiful sunshine, happy hearts dancing in golden light")
	if mood.Polarity <= 0.1 {
		t.Errorf("expected positive polarity, got %f", mood.Polarity)
	}
	if mood.Mood != "Positive" {
		t.Errorf("expected Positive mood, got %s", mood.Mood)
	}
	if mood.Confidence <= 0 {
		t.Error("expected positive confidence for lexicon-heavy text")
	}
}

func TestAnalyzeMoodNegative(t *testing.T) {
	mood := AnalyzeMood("Alone in the darkness I cry, broken and lost, tears of pain")
	if mood.Polarity >= -0.1 {
		t.Errorf("expected negative polarity, got %f", mood.Polarity)
	}
	if mood.Mood != "Negative" {
		t.Errorf("expected Negative mood, got %s", mood.Mood)
	}
}

func TestAnalyzeMoodBounds(t *testing.T) {
	mood := AnalyzeMood("perfect perfect perfect wonderful beautiful happy joy love")
	if mood.Polarity < -1 || mood.Polarity > 1 {
		t.Errorf("polarity out of range: %f", mood.Polarity)
	}
	if mood.Subjectivity < 0 || mood.Subjectivity > 1 {
		t.Errorf("subjectivity out of range: %f", mood.Subjectivity)
	}
	if mood.Confidence < 0 || mood.Confidence > 1 {
		t.Errorf("confidence out of range: %f", mood.Confidence)
	}
}

func TestAnalyzeMoodInsufficientText(t *testing.T) {
	mood := AnalyzeMood("   la    ")
	if mood.Mood != "Unknown" || mood.MoodStrength != "Insufficient data" {
		t.Errorf("short text should be unanalyzable, got %+v", mood)
	}
}

func TestAnalyzeMoodDeterministic(t *testing.T) {
	text := "Hello darkness my old friend, I've come to talk with you again"
	a := AnalyzeMood(text)
	b := AnalyzeMood(text)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input must produce identical analysis")
	}
}

func TestTopWordsExcludeStopwords(t *testing.T) {
	mood := AnalyzeMood("the the the the river river river flows flows to the sea")
	for _, w := range mood.TopWords {
		if w.Word == "the" || w.Word == "to" {
			t.Errorf("stopword %q leaked into top words", w.Word)
		}
	}
	if len(mood.TopWords) == 0 || mood.TopWords[0].Word != "river" || mood.TopWords[0].Count != 3 {
		t.Errorf("expected river×3 first, got %+v", mood.TopWords)
	}
}

type stubLookup struct {
	meta *lyrics.SongMetadata
	err  error
}

func (s stubLookup) Lookup(ctx context.Context, artist, title string) (*lyrics.SongMetadata, error) {
	return s.meta, s.err
}

func TestEnrichRunsRequestedSteps(t *testing.T) {
	pipeline := NewPipeline(stubLookup{meta: &lyrics.SongMetadata{Album: "Aashiqui 2"}}, time.Second)
	req := lyrics.LyricsRequest{Artist: "Arijit Singh", Song: "Tum Hi Ho", WantMood: true, WantMetadata: true}
	result := &lyrics.ResolutionResult{PlainText: "Hum tere bin ab reh nahi sakte, tere bina kya wajood mera"}

	pipeline.Enrich(context.Background(), req, result)

	if result.Mood == nil {
		t.Error("mood requested but absent")
	}
	if result.Metadata == nil || result.Metadata.Album != "Aashiqui 2" {
		t.Error("metadata requested but absent")
	}
}

func TestEnrichSkipsUnrequestedSteps(t *testing.T) {
	pipeline := NewPipeline(stubLookup{meta: &lyrics.SongMetadata{}}, time.Second)
	result := &lyrics.ResolutionResult{PlainText: "some long enough lyric text"}

	pipeline.Enrich(context.Background(), lyrics.LyricsRequest{Artist: "a", Song: "b"}, result)

	if result.Mood != nil || result.Metadata != nil {
		t.Error("enrichment ran without being requested")
	}
}

func TestEnrichIsolatesMetadataFailure(t *testing.T) {
	pipeline := NewPipeline(stubLookup{err: errors.New("metadata backend down")}, time.Second)
	req := lyrics.LyricsRequest{Artist: "a", Song: "b", WantMood: true, WantMetadata: true}
	result := &lyrics.ResolutionResult{PlainText: "a happy wonderful beautiful day full of love"}

	pipeline.Enrich(context.Background(), req, result)

	if result.Metadata != nil {
		t.Error("failed lookup should leave metadata absent")
	}
	if result.Mood == nil {
		t.Error("metadata failure must not prevent mood analysis")
	}
}
