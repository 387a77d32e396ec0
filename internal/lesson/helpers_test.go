package lesson

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/model"
)

type tickClock struct {
	now  time.Time
	step time.Duration
}

func newTickClock(step time.Duration) *tickClock {
	return &tickClock{now: time.Unix(1700000000, 0), step: step}
}

func (c *tickClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// keys converts a script into key events: ' ' is space, '<' backspace,
// '!' escape, '\n' enter and '^' ctrl+c.
func keys(script string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, r := range script {
		switch r {
		case ' ':
			out = append(out, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		case '<':
			out = append(out, tea.KeyMsg{Type: tea.KeyBackspace})
		case '!':
			out = append(out, tea.KeyMsg{Type: tea.KeyEsc})
		case '\n':
			out = append(out, tea.KeyMsg{Type: tea.KeyEnter})
		case '^':
			out = append(out, tea.KeyMsg{Type: tea.KeyCtrlC})
		default:
			out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	return out
}

type scriptInput struct {
	keys []tea.KeyMsg
	err  error
}

func (s *scriptInput) NextKey(ctx context.Context) (tea.KeyMsg, error) {
	if err := ctx.Err(); err != nil {
		return tea.KeyMsg{}, err
	}
	if len(s.keys) == 0 {
		if s.err != nil {
			return tea.KeyMsg{}, s.err
		}
		return tea.KeyMsg{}, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

type recordingSink struct {
	frames  []Frame
	reports []Report
	notices []string
}

func (s *recordingSink) Frame(f Frame) { s.frames = append(s.frames, f) }
func (s *recordingSink) Report(r Report) { s.reports = append(s.reports, r) }
func (s *recordingSink) Notice(n string) { s.notices = append(s.notices, n) }

type memoryRecorder struct {
	mu      sync.Mutex
	records []model.LessonRecord
	keys    [][]model.KeyStats
}

func (m *memoryRecorder) InsertLesson(_ context.Context, rec model.LessonRecord, keys []model.KeyStats) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	m.keys = append(m.keys, keys)
	return int64(len(m.records)), nil
}
