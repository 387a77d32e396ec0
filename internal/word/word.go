package word

import (
	"errors"
	"time"
)

var (
	// ErrIncomplete is returned when finalising a word whose typed text
	// differs from its target.
	ErrIncomplete = errors.New("word is not complete")
	// ErrFinished is returned when finalising a word twice.
	ErrFinished = errors.New("word is already finished")
)

// State is the progress of a Word.
type State uint8

const (
	InProgress State = iota
	Complete
	Finished
)

// Word is a target string being typed. The metric log only grows:
// RemoveChar shortens the typed text but keeps every recorded metric.
type Word struct {
	target   []rune
	typed    []rune
	metrics  []Metric
	finished bool
}

// New returns a word with nothing typed yet.
func New(target string) *Word {
	return &Word{target: []rune(target)}
}

// Target returns the word to type.
func (w *Word) Target() string {
	return string(w.target)
}

// Typed returns the text typed so far.
func (w *Word) Typed() string {
	return string(w.typed)
}

// Metrics returns a copy of the metric log.
func (w *Word) Metrics() []Metric {
	out := make([]Metric, len(w.metrics))
	copy(out, w.metrics)
	return out
}

// State reports the current progress.
func (w *Word) State() State {
	switch {
	case w.finished:
		return Finished
	case w.IsComplete():
		return Complete
	default:
		return InProgress
	}
}

// AddChar appends r to the typed text. Within the target length it records
// a Match or a Typo against the expected character; beyond it nothing is
// recorded. Input after Finalise is ignored.
func (w *Word) AddChar(r rune, d time.Duration) {
	if w.finished {
		return
	}
	pos := len(w.typed)
	w.typed = append(w.typed, r)
	if pos >= len(w.target) {
		return
	}
	expected := w.target[pos]
	if r == expected {
		w.metrics = append(w.metrics, Metric{Kind: Match, Typed: r, Duration: d})
		return
	}
	w.metrics = append(w.metrics, Metric{Kind: Typo, Typed: r, Expected: expected, Duration: d})
}

// RemoveChar drops the last typed character.
func (w *Word) RemoveChar() {
	if w.finished || len(w.typed) == 0 {
		return
	}
	w.typed = w.typed[:len(w.typed)-1]
}

// IsComplete reports whether the typed text equals the target exactly.
func (w *Word) IsComplete() bool {
	if len(w.typed) != len(w.target) {
		return false
	}
	for i, r := range w.target {
		if w.typed[i] != r {
			return false
		}
	}
	return true
}

// Overflow is the number of characters typed past the end of the target.
// It is display data only.
func (w *Word) Overflow() int {
	if n := len(w.typed) - len(w.target); n > 0 {
		return n
	}
	return 0
}

// Finalise confirms a complete word with the delimiter keystroke and
// returns its immutable record.
func (w *Word) Finalise(delimiter rune, d time.Duration) (FinishedWord, error) {
	if w.finished {
		return FinishedWord{}, ErrFinished
	}
	if !w.IsComplete() {
		return FinishedWord{}, ErrIncomplete
	}
	w.metrics = append(w.metrics, Metric{Kind: Delimiter, Typed: delimiter, Duration: d})
	w.finished = true
	w.typed = nil
	fw := FinishedWord{target: string(w.target), metrics: w.metrics}
	w.metrics = nil
	return fw, nil
}

// FinishedWord is a confirmed word with its final metric log.
type FinishedWord struct {
	target  string
	metrics []Metric
}

// NewFinished builds a finished word from a recorded log.
func NewFinished(target string, metrics []Metric) FinishedWord {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return FinishedWord{target: target, metrics: out}
}

// Target returns the typed word.
func (f FinishedWord) Target() string {
	return f.target
}

// Len is the number of characters in the word.
func (f FinishedWord) Len() int {
	return len([]rune(f.target))
}

// LenIncDelim counts the word plus its trailing delimiter.
func (f FinishedWord) LenIncDelim() int {
	return f.Len() + 1
}

// Metrics returns a copy of the metric log.
func (f FinishedWord) Metrics() []Metric {
	out := make([]Metric, len(f.metrics))
	copy(out, f.metrics)
	return out
}

// Duration sums the durations of every metric, think time included.
func (f FinishedWord) Duration() time.Duration {
	var total time.Duration
	for _, m := range f.metrics {
		total += m.Duration
	}
	return total
}

// Count returns the number of metrics of the given kind.
func (f FinishedWord) Count(kind MetricKind) int {
	n := 0
	for _, m := range f.metrics {
		if m.Kind == kind {
			n++
		}
	}
	return n
}
