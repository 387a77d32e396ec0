package lesson

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/word"
)

// DelimiterRune confirms a completed word.
const DelimiterRune = ' '

// Status is the outcome of handling a key.
type Status uint8

const (
	// StatusTyping means the lesson continues.
	StatusTyping Status = iota
	// StatusDone means the last word was confirmed.
	StatusDone
	// StatusCancelled means the user ended the lesson early.
	StatusCancelled
)

// Test drives the words of one lesson. Keys are remapped, then applied to
// the current word; a delimiter on a complete word moves to the next one.
type Test struct {
	queue     []string
	current   *word.Word
	committed []string
	finished  []word.FinishedWord
	watch     *Stopwatch
	remap     *keymap.Remapper

	pressed    rune
	hasPressed bool
}

// NewTest starts a test over the sampled words. Timing starts now.
func NewTest(words []string, clock Clock, remap *keymap.Remapper) (*Test, error) {
	if len(words) == 0 {
		return nil, errors.New("lesson has no words")
	}
	queue := make([]string, len(words)-1)
	copy(queue, words[1:])
	return &Test{
		queue:   queue,
		current: word.New(words[0]),
		watch:   NewStopwatch(clock),
		remap:   remap,
	}, nil
}

// HandleKey applies one key event. Alt-modified keys are ignored.
func (t *Test) HandleKey(msg tea.KeyMsg) (Status, error) {
	if msg.Type == tea.KeyEsc {
		return StatusCancelled, nil
	}
	if msg.Alt {
		return StatusTyping, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		t.current.RemoveChar()
		return StatusTyping, nil
	case tea.KeySpace:
		return t.handleRune(DelimiterRune)
	case tea.KeyRunes:
		msg = t.remap.Remap(msg)
		for _, r := range msg.Runes {
			status, err := t.handleRune(r)
			if err != nil || status != StatusTyping {
				return status, err
			}
		}
		return StatusTyping, nil
	default:
		return StatusTyping, nil
	}
}

func (t *Test) handleRune(r rune) (Status, error) {
	t.pressed = r
	t.hasPressed = true
	d, err := t.watch.Lap()
	if err != nil {
		return StatusTyping, err
	}
	if r != DelimiterRune || !t.current.IsComplete() {
		t.current.AddChar(r, d)
		return StatusTyping, nil
	}
	fw, err := t.current.Finalise(r, d)
	if err != nil {
		return StatusTyping, fmt.Errorf("failed to finalise %q: %w", t.current.Target(), err)
	}
	t.finished = append(t.finished, fw)
	t.committed = append(t.committed, fw.Target())
	if len(t.queue) == 0 {
		return StatusDone, nil
	}
	t.current = word.New(t.queue[0])
	t.queue = t.queue[1:]
	return StatusTyping, nil
}

// Results returns the confirmed words. The word in progress is not part
// of them.
func (t *Test) Results() stats.Results {
	return stats.NewResults(t.finished)
}

// Frame returns display data for the current state.
func (t *Test) Frame() Frame {
	f := Frame{
		Committed: append([]string(nil), t.committed...),
		Current:   t.current.Cells(),
		Remaining: append([]string(nil), t.queue...),
		Finished:  len(t.finished),
		Total:     len(t.finished) + 1 + len(t.queue),
	}
	if t.hasPressed {
		f.Pressed = t.pressed
		f.PressedKey, f.HasPressedKey = t.remap.KeyFor(t.pressed)
	}
	return f
}

// Frame is the display data of a lesson in progress.
type Frame struct {
	Lesson   Lesson
	Position int
	Lessons  int

	Committed []string
	Current   []word.Cell
	Remaining []string
	Finished  int
	Total     int

	Pressed       rune
	PressedKey    keymap.Key
	HasPressedKey bool
}
