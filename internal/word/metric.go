// Package word tracks typing progress through a single practice word.
package word

import "time"

// MetricKind classifies a keystroke.
type MetricKind uint8

const (
	// Match is a keystroke equal to the expected character.
	Match MetricKind = iota
	// Typo is a keystroke that differs from the expected character.
	Typo
	// Delimiter is the keystroke confirming a completed word.
	Delimiter
)

func (k MetricKind) String() string {
	switch k {
	case Match:
		return "match"
	case Typo:
		return "typo"
	case Delimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// Metric records one classified keystroke. Expected is only set for typos.
// Duration is the time since the previous keystroke, or since the word was
// presented for the first one.
type Metric struct {
	Kind     MetricKind
	Typed    rune
	Expected rune
	Duration time.Duration
}
