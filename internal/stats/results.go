// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/word"
)

// charsPerWord normalises characters into words for WPM.
const charsPerWord = 5.0

// Results holds the finished words of one lesson. It is read-only once
// built; every statistic is derived from the words on demand.
type Results struct {
	words []word.FinishedWord
}

// NewResults wraps the finished words of a lesson, in typing order.
func NewResults(words []word.FinishedWord) Results {
	out := make([]word.FinishedWord, len(words))
	copy(out, words)
	return Results{words: out}
}

// Words returns the finished words in typing order.
func (r Results) Words() []word.FinishedWord {
	out := make([]word.FinishedWord, len(r.words))
	copy(out, r.words)
	return out
}

// WordCount is the number of finished words.
func (r Results) WordCount() int {
	return len(r.words)
}

// CharCount counts every word plus its trailing delimiter.
func (r Results) CharCount() int {
	total := 0
	for _, w := range r.words {
		total += w.LenIncDelim()
	}
	return total
}

// Duration sums the duration of every metric of every word.
func (r Results) Duration() time.Duration {
	var total time.Duration
	for _, w := range r.words {
		total += w.Duration()
	}
	return total
}

// DurationSecs is Duration in seconds.
func (r Results) DurationSecs() float64 {
	return r.Duration().Seconds()
}

// WPM computes words per minute with five characters per word. It is zero
// when nothing was finished or no time elapsed.
func (r Results) WPM() float64 {
	if len(r.words) == 0 {
		return 0
	}
	minutes := r.DurationSecs() / 60.0
	if minutes <= 0 {
		return 0
	}
	return (float64(r.CharCount()) / charsPerWord) / minutes
}

// TypoCount counts typo metrics across all words.
func (r Results) TypoCount() int {
	return r.count(word.Typo)
}

// MatchCount counts match metrics across all words.
func (r Results) MatchCount() int {
	return r.count(word.Match)
}

// Accuracy is the share of classified keystrokes that matched.
func (r Results) Accuracy() float64 {
	matches := r.MatchCount()
	den := matches + r.TypoCount()
	if den == 0 {
		return 0
	}
	return float64(matches) / float64(den)
}

func (r Results) count(kind word.MetricKind) int {
	total := 0
	for _, w := range r.words {
		total += w.Count(kind)
	}
	return total
}

// WordDurations returns the raw time spent on each word.
func (r Results) WordDurations() []time.Duration {
	out := make([]time.Duration, len(r.words))
	for i, w := range r.words {
		out[i] = w.Duration()
	}
	return out
}

// NormalisedWordDurations returns seconds per character for each word,
// delimiter included, so long and short words compare on one scale.
func (r Results) NormalisedWordDurations() []float64 {
	out := make([]float64, len(r.words))
	for i, w := range r.words {
		out[i] = w.Duration().Seconds() / float64(w.LenIncDelim())
	}
	return out
}

// KeyStats aggregates matches, typos and match latency per expected
// character, sorted by character.
func (r Results) KeyStats() []model.KeyStats {
	byChar := map[rune]*model.KeyStats{}
	entry := func(ch rune) *model.KeyStats {
		e, ok := byChar[ch]
		if !ok {
			e = &model.KeyStats{Char: string(ch)}
			byChar[ch] = e
		}
		return e
	}
	for _, w := range r.words {
		for _, m := range w.Metrics() {
			switch m.Kind {
			case word.Match:
				e := entry(m.Typed)
				e.Matches++
				e.LatencySumMs += m.Duration.Milliseconds()
				e.LatencyCount++
			case word.Typo:
				entry(m.Expected).Typos++
			}
		}
	}
	out := make([]model.KeyStats, 0, len(byChar))
	for _, e := range byChar {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Char < out[j].Char
	})
	return out
}
