package lesson

import (
	"errors"
	"fmt"
	"time"
)

// ErrClock is returned when the clock reads earlier than a previous reading.
var ErrClock = errors.New("clock went backwards")

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock with its monotonic component.
var SystemClock Clock = ClockFunc(time.Now)

// Stopwatch measures the time between keystrokes.
type Stopwatch struct {
	clock Clock
	last  time.Time
}

// NewStopwatch starts a stopwatch at the current time.
func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{clock: clock, last: clock.Now()}
}

// Lap returns the time since the previous lap (or the start) and begins a
// new one.
func (s *Stopwatch) Lap() (time.Duration, error) {
	now := s.clock.Now()
	if now.Before(s.last) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrClock, now.Format(time.RFC3339Nano), s.last.Format(time.RFC3339Nano))
	}
	d := now.Sub(s.last)
	s.last = now
	return d, nil
}
