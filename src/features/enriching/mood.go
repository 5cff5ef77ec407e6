// Package enriching runs the optional post-resolution steps: mood analysis
// over the lyric text and external metadata lookup. Both are best-effort and
// never fail the resolution that feeds them.
package enriching

import (
	"sort"
	"strings"

	"lyrica/src/lyrics"
)

// sentiment holds the polarity and subjectivity weight of one lexicon word.
type sentiment struct {
	polarity     float64
	subjectivity float64
}

// lexicon maps sentiment-bearing words to their weights. Scores follow the
// -1..1 polarity and 0..1 subjectivity scales of the mood contract.
var lexicon = map[string]sentiment{
	// positive
	"love": {0.6, 0.7}, "loved": {0.6, 0.7}, "loving": {0.6, 0.7},
	"happy": {0.8, 0.9}, "happiness": {0.8, 0.9}, "joy": {0.8, 0.8},
	"joyful": {0.8, 0.9}, "smile": {0.5, 0.6}, "smiling": {0.5, 0.6},
	"beautiful": {0.85, 0.9}, "beauty": {0.7, 0.8}, "wonderful": {0.9, 0.9},
	"amazing": {0.7, 0.9}, "great": {0.8, 0.75}, "good": {0.7, 0.6},
	"best": {1.0, 0.3}, "better": {0.5, 0.5}, "sweet": {0.4, 0.65},
	"bright": {0.7, 0.8}, "shine": {0.5, 0.6}, "shining": {0.5, 0.6},
	"light": {0.4, 0.6}, "sunshine": {0.6, 0.7}, "heaven": {0.7, 0.8},
	"hope": {0.5, 0.6}, "dream": {0.4, 0.6}, "dreams": {0.4, 0.6},
	"free": {0.4, 0.7}, "freedom": {0.5, 0.7}, "alive": {0.5, 0.6},
	"young": {0.3, 0.4}, "dance": {0.4, 0.5}, "dancing": {0.4, 0.5},
	"laugh": {0.5, 0.6}, "laughing": {0.5, 0.6}, "perfect": {1.0, 1.0},
	"paradise": {0.8, 0.8}, "angel": {0.5, 0.6}, "gold": {0.4, 0.5},
	"golden": {0.5, 0.6}, "warm": {0.5, 0.6}, "home": {0.3, 0.4},
	"peace": {0.6, 0.6}, "glory": {0.6, 0.7}, "strong": {0.5, 0.5},
	"stronger": {0.5, 0.5}, "win": {0.6, 0.6}, "victory": {0.7, 0.7},
	"forever": {0.3, 0.5}, "together": {0.4, 0.4}, "kiss": {0.4, 0.6},
	"darling": {0.4, 0.6}, "baby": {0.2, 0.4}, "heart": {0.2, 0.5},
	"magic": {0.6, 0.8}, "wild": {0.2, 0.6}, "fun": {0.6, 0.7},
	"celebrate": {0.7, 0.7}, "blessed": {0.7, 0.8}, "grace": {0.5, 0.6},
	"true": {0.4, 0.5}, "faith": {0.4, 0.5}, "believe": {0.3, 0.5},

	// negative
	"sad": {-0.7, 0.9}, "sadness": {-0.7, 0.9}, "cry": {-0.6, 0.8},
	"crying": {-0.6, 0.8}, "tears": {-0.5, 0.7}, "tear": {-0.4, 0.6},
	"pain": {-0.7, 0.8}, "painful": {-0.7, 0.8}, "hurt": {-0.6, 0.7},
	"hurts": {-0.6, 0.7}, "broken": {-0.6, 0.7}, "break": {-0.4, 0.5},
	"breaking": {-0.4, 0.5}, "alone": {-0.5, 0.6}, "lonely": {-0.7, 0.8},
	"loneliness": {-0.7, 0.8}, "lost": {-0.5, 0.6}, "lose": {-0.4, 0.5},
	"losing": {-0.4, 0.5}, "dark": {-0.5, 0.6}, "darkness": {-0.6, 0.7},
	"cold": {-0.4, 0.6}, "dead": {-0.8, 0.7}, "death": {-0.8, 0.7},
	"die": {-0.7, 0.7}, "dying": {-0.7, 0.7}, "fear": {-0.6, 0.7},
	"afraid": {-0.6, 0.7}, "scared": {-0.6, 0.7}, "hate": {-0.8, 0.9},
	"hated": {-0.8, 0.9}, "angry": {-0.7, 0.9}, "anger": {-0.7, 0.8},
	"rage": {-0.8, 0.9}, "war": {-0.6, 0.5}, "fight": {-0.4, 0.5},
	"fighting": {-0.4, 0.5}, "goodbye": {-0.3, 0.4}, "sorry": {-0.3, 0.6},
	"wrong": {-0.5, 0.5}, "bad": {-0.7, 0.65}, "worst": {-1.0, 0.3},
	"worse": {-0.5, 0.5}, "empty": {-0.5, 0.6}, "nothing": {-0.3, 0.4},
	"never": {-0.2, 0.3}, "gone": {-0.4, 0.5}, "leave": {-0.3, 0.4},
	"leaving": {-0.3, 0.4}, "miss": {-0.4, 0.6}, "missing": {-0.4, 0.6},
	"regret": {-0.6, 0.8}, "shame": {-0.6, 0.8}, "fall": {-0.2, 0.3},
	"falling": {-0.2, 0.3}, "fell": {-0.2, 0.3}, "burn": {-0.4, 0.6},
	"burning": {-0.4, 0.6}, "storm": {-0.4, 0.5}, "rain": {-0.2, 0.4},
	"grave": {-0.6, 0.6}, "devil": {-0.6, 0.7}, "hell": {-0.7, 0.7},
	"lie": {-0.5, 0.6}, "lies": {-0.5, 0.6}, "cruel": {-0.8, 0.9},
	"broke": {-0.5, 0.6}, "trouble": {-0.5, 0.6}, "weak": {-0.5, 0.5},
}

// stopwords excluded from top-word counting.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "than", "so",
		"of", "in", "on", "at", "to", "for", "from", "with", "without", "by",
		"is", "am", "are", "was", "were", "be", "been", "being", "do", "does",
		"did", "have", "has", "had", "will", "would", "can", "could", "shall",
		"should", "may", "might", "must", "i", "im", "ive", "ill", "me", "my",
		"mine", "you", "your", "yours", "youre", "he", "him", "his", "she",
		"her", "hers", "it", "its", "we", "us", "our", "ours", "they", "them",
		"their", "theirs", "this", "that", "these", "those", "there", "here",
		"what", "when", "where", "who", "whom", "why", "how", "all", "any",
		"each", "no", "not", "nor", "only", "own", "same", "some", "such",
		"too", "very", "just", "dont", "cant", "wont", "aint", "gonna",
		"wanna", "gotta", "oh", "ooh", "yeah", "la", "na", "hey", "uh",
		"as", "up", "down", "out", "now", "get", "got", "go", "know", "like",
		"one", "two", "let", "say", "said", "see", "way", "back", "come",
	} {
		stopwords[w] = struct{}{}
	}
}

const (
	minAnalyzableLength = 10
	topWordCount        = 10
)

// AnalyzeMood computes the sentiment summary for a lyric text. It is a pure
// function: identical input always yields an identical result.
func AnalyzeMood(text string) *lyrics.MoodAnalysis {
	if len(strings.TrimSpace(text)) < minAnalyzableLength {
		return &lyrics.MoodAnalysis{
			Mood:         "Unknown",
			MoodStrength: "Insufficient data",
			OverallMood:  "Not enough lyrics to analyze",
		}
	}

	tokens := tokenize(text)
	var polaritySum, subjectivitySum float64
	matched := 0
	for _, token := range tokens {
		if s, ok := lexicon[token]; ok {
			polaritySum += s.polarity
			subjectivitySum += s.subjectivity
			matched++
		}
	}

	var polarity, subjectivity float64
	if matched > 0 {
		polarity = round3(polaritySum / float64(matched))
		subjectivity = round3(subjectivitySum / float64(matched))
	}

	mood := "Neutral"
	if polarity > 0.1 {
		mood = "Positive"
	} else if polarity < -0.1 {
		mood = "Negative"
	}

	return &lyrics.MoodAnalysis{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Mood:         mood,
		MoodStrength: moodStrength(polarity),
		OverallMood:  moodDescription(polarity, subjectivity),
		Confidence:   confidence(matched, len(tokens), polarity),
		TopWords:     topWords(tokens, topWordCount),
	}
}

func moodStrength(polarity float64) string {
	abs := polarity
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 0.7:
		return "Very Strong"
	case abs > 0.5:
		return "Strong"
	case abs > 0.25:
		return "Moderate"
	default:
		return "Weak"
	}
}

// moodDescription maps the polarity/subjectivity pair to a descriptive label.
func moodDescription(polarity, subjectivity float64) string {
	switch {
	case polarity > 0.5:
		if subjectivity > 0.6 {
			return "Very Happy & Emotional"
		} else if subjectivity > 0.3 {
			return "Happy & Expressive"
		}
		return "Uplifting & Positive"
	case polarity > 0.25:
		if subjectivity > 0.6 {
			return "Joyful & Personal"
		} else if subjectivity > 0.3 {
			return "Cheerful"
		}
		return "Optimistic"
	case polarity > 0.1:
		return "Mildly Positive"
	case polarity > -0.1:
		if subjectivity > 0.6 {
			return "Introspective & Neutral"
		} else if subjectivity > 0.3 {
			return "Matter-of-fact"
		}
		return "Neutral & Objective"
	case polarity > -0.25:
		return "Mildly Negative"
	case polarity > -0.5:
		if subjectivity > 0.6 {
			return "Sad & Emotional"
		} else if subjectivity > 0.3 {
			return "Melancholic"
		}
		return "Dark"
	default:
		if subjectivity > 0.6 {
			return "Very Sad & Emotional"
		} else if subjectivity > 0.3 {
			return "Angry & Intense"
		}
		return "Very Negative & Harsh"
	}
}

// confidence blends lexicon coverage with polarity magnitude: a text that
// barely touches the lexicon scores low even when its few matches are
// strongly polarized.
func confidence(matched, total int, polarity float64) float64 {
	if total == 0 || matched == 0 {
		return 0
	}
	coverage := float64(matched) / float64(total)
	abs := polarity
	if abs < 0 {
		abs = -abs
	}
	c := coverage*3 + abs*0.5
	if c > 1 {
		c = 1
	}
	return round3(c)
}

// topWords returns the n most frequent non-stopword tokens, ties broken
// alphabetically for determinism.
func topWords(tokens []string, n int) []lyrics.WordCount {
	counts := make(map[string]int)
	for _, token := range tokens {
		if len(token) < 3 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		counts[token]++
	}
	words := make([]lyrics.WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, lyrics.WordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}

func tokenize(text string) []string {
	text = strings.ToLower(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return (r < 'a' || r > 'z') && r != '\''
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		// "don't" and "dont" count as the same token
		token := strings.ReplaceAll(field, "'", "")
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func round3(f float64) float64 {
	if f >= 0 {
		return float64(int(f*1000+0.5)) / 1000
	}
	return float64(int(f*1000-0.5)) / 1000
}
