package lesson

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/sampler"
)

func newTestRunner(t *testing.T, lessons []Lesson, corpus []string, words int, script string) (*Runner, *recordingSink, *memoryRecorder) {
	t.Helper()
	sink := &recordingSink{}
	rec := &memoryRecorder{}
	r, err := NewRunner(Options{
		RunID:    "run-1",
		Lessons:  lessons,
		Corpus:   corpus,
		Words:    words,
		Sampler:  sampler.NewSeeded(1),
		Remapper: identity(t),
		Clock:    newTickClock(time.Second),
		Input:    &scriptInput{keys: keys(script)},
		Sink:     sink,
		Recorder: rec,
	})
	require.NoError(t, err)
	return r, sink, rec
}

func TestRunnerPlaysLessonsInOrder(t *testing.T) {
	lessons := []Lesson{
		{Name: "first", Alphabet: "ab"},
		{Name: "second", Alphabet: "abc"},
	}
	// Lesson one can only draw "ab"; lesson two is stopped with Esc right
	// away and the run ends with Esc on its report.
	r, sink, rec := newTestRunner(t, lessons, []string{"ab", "abc"}, 2, "ab ab \nab!!")
	require.NoError(t, r.Run(context.Background()))

	require.Len(t, sink.reports, 2)
	first, second := sink.reports[0], sink.reports[1]
	assert.Equal(t, "first", first.Lesson.Name)
	assert.False(t, first.Cancelled)
	assert.Equal(t, 2, first.Results.WordCount())
	assert.Equal(t, 0, first.Results.TypoCount())

	assert.Equal(t, "second", second.Lesson.Name)
	assert.True(t, second.Cancelled)
	assert.True(t, second.Last())
	assert.Equal(t, 0, second.Results.WordCount())

	require.Len(t, rec.records, 2)
	assert.Equal(t, "run-1", rec.records[0].RunID)
	assert.Equal(t, 6, rec.records[0].Chars)
	assert.Equal(t, 6000, int(rec.records[0].DurationMs))
	assert.InDelta(t, 12.0, rec.records[0].WPM, 1e-9)
	assert.True(t, rec.records[1].Cancelled)
	assert.NotEmpty(t, rec.keys[0])

	require.NotEmpty(t, sink.frames)
	assert.Equal(t, 0, sink.frames[0].Position)
	assert.Equal(t, 2, sink.frames[0].Lessons)
	assert.Equal(t, 1, sink.frames[len(sink.frames)-1].Position)
}

func TestRunnerEscOnReportEndsRun(t *testing.T) {
	lessons := []Lesson{{Name: "a", Alphabet: "a"}, {Name: "ab", Alphabet: "ab"}}
	r, sink, _ := newTestRunner(t, lessons, []string{"a"}, 1, "a !")
	require.NoError(t, r.Run(context.Background()))
	assert.Len(t, sink.reports, 1)
}

func TestRunnerHoldIgnoresOtherKeys(t *testing.T) {
	lessons := []Lesson{{Name: "a", Alphabet: "a"}, {Name: "ab", Alphabet: "ab"}}
	r, sink, _ := newTestRunner(t, lessons, []string{"a"}, 1, "a xy<\na \n")
	require.NoError(t, r.Run(context.Background()))
	assert.Len(t, sink.reports, 2)
}

func TestRunnerCtrlCAborts(t *testing.T) {
	lessons := []Lesson{{Name: "a", Alphabet: "a"}}
	r, sink, rec := newTestRunner(t, lessons, []string{"a"}, 3, "a ^")
	err := r.Run(context.Background())
	require.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, sink.reports)
	assert.Empty(t, rec.records)
}

func TestRunnerInputFailureIsFatal(t *testing.T) {
	lessons := []Lesson{{Name: "a", Alphabet: "a"}}
	r, _, _ := newTestRunner(t, lessons, []string{"a"}, 2, "a")
	err := r.Run(context.Background())
	require.ErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "failed to read key")
}

func TestRunnerContextCancelled(t *testing.T) {
	lessons := []Lesson{{Name: "a", Alphabet: "a"}}
	r, _, _ := newTestRunner(t, lessons, []string{"a"}, 2, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunnerSamplingExhausted(t *testing.T) {
	lessons := []Lesson{{Name: "a", Alphabet: "a"}}
	r, _, _ := newTestRunner(t, lessons, []string{"zzz"}, 2, "")
	err := r.Run(context.Background())
	require.ErrorIs(t, err, sampler.ErrSamplingExhausted)
}

func TestRunnerSkipsUnsatisfiableLesson(t *testing.T) {
	sink := &recordingSink{}
	r, err := NewRunner(Options{
		Lessons:           []Lesson{{Name: "x only", Alphabet: "x"}, {Name: "ab", Alphabet: "ab"}},
		Corpus:            []string{"ab"},
		Words:             1,
		SkipUnsatisfiable: true,
		Sampler:           sampler.NewSeeded(3),
		Remapper:          identity(t),
		Clock:             newTickClock(time.Second),
		Input:             &scriptInput{keys: keys("ab \n")},
		Sink:              sink,
	})
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))
	require.Len(t, sink.notices, 1)
	assert.Contains(t, sink.notices[0], "x only")
	require.Len(t, sink.reports, 1)
	assert.Equal(t, 1, sink.reports[0].Position)
}

func TestNewRunnerValidates(t *testing.T) {
	_, err := NewRunner(Options{Lessons: Default(), Words: 0})
	require.Error(t, err)
	_, err = NewRunner(Options{Lessons: Default(), Words: 5})
	require.Error(t, err)
	_, err = NewRunner(Options{Words: 5})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Default()))
	require.Error(t, Validate(nil))
	require.Error(t, Validate([]Lesson{{Name: "empty"}}))
	err := Validate([]Lesson{{Name: "big", Alphabet: "abc"}, {Name: "small", Alphabet: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "small")
}

func TestDefaultLessonsAreSatisfiable(t *testing.T) {
	s := sampler.NewSeeded(9)
	corpus := []string{"the", "hat", "this", "call", "with", "quiz"}
	for _, l := range Default() {
		_, err := s.Sample(corpus, l.Allowed(), 3)
		require.NoError(t, err, l.Name)
	}
}

func TestFromConfigDefaults(t *testing.T) {
	assert.Equal(t, Default(), FromConfig(nil))
}

