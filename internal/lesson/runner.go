package lesson

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/sampler"
	"github.com/verte-zerg/keydrill/internal/stats"
)

// ErrAborted is returned when the user quits the whole run.
var ErrAborted = errors.New("run aborted")

// Input yields key presses, blocking until one arrives.
type Input interface {
	NextKey(ctx context.Context) (tea.KeyMsg, error)
}

// Sink receives display data. It never feeds back into the run.
type Sink interface {
	Frame(Frame)
	Report(Report)
	Notice(string)
}

// Recorder stores reported lessons.
type Recorder interface {
	InsertLesson(ctx context.Context, rec model.LessonRecord, keys []model.KeyStats) (int64, error)
}

// Report is the outcome of one lesson.
type Report struct {
	Lesson    Lesson
	Position  int
	Lessons   int
	Results   stats.Results
	Cancelled bool
}

// Last reports whether no lesson follows this one.
func (r Report) Last() bool {
	return r.Position == r.Lessons-1
}

// Options configures a Runner. Recorder is optional.
type Options struct {
	RunID             string
	Lessons           []Lesson
	Corpus            []string
	Words             int
	SkipUnsatisfiable bool

	Sampler  *sampler.Sampler
	Remapper *keymap.Remapper
	Clock    Clock
	Input    Input
	Sink     Sink
	Recorder Recorder
}

// Runner plays lessons in order, one word at a time.
type Runner struct {
	opts Options
}

// NewRunner validates options and fills defaults.
func NewRunner(opts Options) (*Runner, error) {
	if err := Validate(opts.Lessons); err != nil {
		return nil, err
	}
	if opts.Words <= 0 {
		return nil, fmt.Errorf("words per lesson must be > 0")
	}
	if opts.Input == nil || opts.Sink == nil || opts.Remapper == nil {
		return nil, fmt.Errorf("runner needs an input, a sink and a remapper")
	}
	if opts.Sampler == nil {
		opts.Sampler = sampler.New()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	return &Runner{opts: opts}, nil
}

// Run plays every lesson. After each report it waits for Enter to move on
// or Esc to stop. Ctrl+C at any point returns ErrAborted.
func (r *Runner) Run(ctx context.Context) error {
	lessons := r.opts.Lessons
	for i, l := range lessons {
		words, err := r.opts.Sampler.Sample(r.opts.Corpus, l.Allowed(), r.opts.Words)
		if err != nil {
			if r.opts.SkipUnsatisfiable && errors.Is(err, sampler.ErrSamplingExhausted) {
				r.opts.Sink.Notice(fmt.Sprintf("skipped %s: %v", l.Name, err))
				continue
			}
			return fmt.Errorf("failed to sample lesson %q: %w", l.Name, err)
		}

		startedAt := r.opts.Clock.Now()
		test, err := NewTest(words, r.opts.Clock, r.opts.Remapper)
		if err != nil {
			return err
		}
		status, err := r.play(ctx, test, l, i)
		if err != nil {
			return err
		}

		report := Report{
			Lesson:    l,
			Position:  i,
			Lessons:   len(lessons),
			Results:   test.Results(),
			Cancelled: status == StatusCancelled,
		}
		r.record(ctx, report, startedAt)
		r.opts.Sink.Report(report)

		next, err := r.hold(ctx)
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
	return nil
}

func (r *Runner) play(ctx context.Context, test *Test, l Lesson, pos int) (Status, error) {
	r.frame(test, l, pos)
	for {
		msg, err := r.nextKey(ctx)
		if err != nil {
			return StatusTyping, err
		}
		status, err := test.HandleKey(msg)
		if err != nil {
			return status, err
		}
		r.frame(test, l, pos)
		if status != StatusTyping {
			return status, nil
		}
	}
}

func (r *Runner) hold(ctx context.Context) (bool, error) {
	for {
		msg, err := r.nextKey(ctx)
		if err != nil {
			return false, err
		}
		switch msg.Type {
		case tea.KeyEnter:
			return true, nil
		case tea.KeyEsc:
			return false, nil
		}
	}
}

func (r *Runner) nextKey(ctx context.Context) (tea.KeyMsg, error) {
	msg, err := r.opts.Input.NextKey(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return msg, err
		}
		return msg, fmt.Errorf("failed to read key: %w", err)
	}
	if msg.Type == tea.KeyCtrlC {
		return msg, ErrAborted
	}
	return msg, nil
}

func (r *Runner) frame(test *Test, l Lesson, pos int) {
	f := test.Frame()
	f.Lesson = l
	f.Position = pos
	f.Lessons = len(r.opts.Lessons)
	r.opts.Sink.Frame(f)
}

func (r *Runner) record(ctx context.Context, report Report, startedAt time.Time) {
	if r.opts.Recorder == nil {
		return
	}
	res := report.Results
	rec := model.LessonRecord{
		RunID:      r.opts.RunID,
		Position:   report.Position,
		Name:       report.Lesson.Name,
		Alphabet:   report.Lesson.Alphabet,
		StartedAt:  startedAt,
		EndedAt:    r.opts.Clock.Now(),
		Words:      res.WordCount(),
		Chars:      res.CharCount(),
		Typos:      res.TypoCount(),
		DurationMs: res.Duration().Milliseconds(),
		WPM:        res.WPM(),
		Accuracy:   res.Accuracy(),
		Cancelled:  report.Cancelled,
	}
	if _, err := r.opts.Recorder.InsertLesson(ctx, rec, res.KeyStats()); err != nil {
		logErrf("failed to record lesson: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
