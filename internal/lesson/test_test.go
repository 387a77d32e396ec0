package lesson

import (
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/word"
)

func identity(t *testing.T) *keymap.Remapper {
	t.Helper()
	m, err := keymap.NewRemapper("dvorak", "dvorak")
	require.NoError(t, err)
	return m
}

func feed(t *testing.T, test *Test, script string) Status {
	t.Helper()
	status := StatusTyping
	for _, k := range keys(script) {
		var err error
		status, err = test.HandleKey(k)
		require.NoError(t, err)
		if status != StatusTyping {
			return status
		}
	}
	return status
}

func TestTestCompletesQueue(t *testing.T) {
	test, err := NewTest([]string{"ab", "cd"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)

	assert.Equal(t, StatusTyping, feed(t, test, "ab "))
	assert.Equal(t, StatusDone, feed(t, test, "cd "))

	res := test.Results()
	assert.Equal(t, 2, res.WordCount())
	assert.Equal(t, 6, res.CharCount())
	assert.Equal(t, 6*time.Second, res.Duration())
	assert.InDelta(t, 12.0, res.WPM(), 1e-9)
}

func TestSpaceOnIncompleteWordIsTyped(t *testing.T) {
	test, err := NewTest([]string{"ab"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)

	assert.Equal(t, StatusTyping, feed(t, test, "a <b"))
	assert.Equal(t, StatusDone, feed(t, test, " "))

	metrics := test.Results().Words()[0].Metrics()
	require.Len(t, metrics, 4)
	assert.Equal(t, word.Typo, metrics[1].Kind)
	assert.Equal(t, ' ', metrics[1].Typed)
	assert.Equal(t, 'b', metrics[1].Expected)
	assert.Equal(t, word.Delimiter, metrics[3].Kind)
	assert.Equal(t, 1, test.Results().TypoCount())
}

func TestKeysAreRemapped(t *testing.T) {
	remap, err := keymap.NewRemapper("qwerty", "dvorak")
	require.NoError(t, err)
	test, err := NewTest([]string{"he"}, newTickClock(time.Millisecond), remap)
	require.NoError(t, err)

	assert.Equal(t, StatusDone, feed(t, test, "jd "))
	assert.Equal(t, 0, test.Results().TypoCount())
}

func TestEscDiscardsWordInProgress(t *testing.T) {
	test, err := NewTest([]string{"ab", "cd"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, feed(t, test, "ab cx!"))
	res := test.Results()
	assert.Equal(t, 1, res.WordCount())
	assert.Equal(t, 0, res.TypoCount())
}

func TestOtherControlKeysIgnored(t *testing.T) {
	test, err := NewTest([]string{"a"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)
	status, err := test.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.NoError(t, err)
	assert.Equal(t, StatusTyping, status)
	assert.Equal(t, []word.Cell{{Rune: 'a', State: word.CellUntyped}}, test.Frame().Current)
}

func TestAltKeysIgnored(t *testing.T) {
	test, err := NewTest([]string{"ab"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)
	test.current.AddChar('a', 0)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeySpace, Alt: true},
		{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true},
		{Type: tea.KeyBackspace, Alt: true},
	} {
		status, err := test.HandleKey(msg)
		require.NoError(t, err)
		assert.Equal(t, StatusTyping, status)
	}
	assert.Equal(t, []word.Cell{
		{Rune: 'a', State: word.CellCorrect},
		{Rune: 'b', State: word.CellUntyped},
	}, test.Frame().Current)

	status, err := test.HandleKey(tea.KeyMsg{Type: tea.KeyEsc, Alt: true})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)
}

func TestPastedRunesStopAtDone(t *testing.T) {
	test, err := NewTest([]string{"ab"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)
	status, err := test.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab zz")})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, status)
	assert.Equal(t, 1, test.Results().WordCount())
}

type backwardsClock struct{ now time.Time }

func (c *backwardsClock) Now() time.Time {
	c.now = c.now.Add(-time.Second)
	return c.now
}

func TestClockGoingBackwards(t *testing.T) {
	test, err := NewTest([]string{"ab"}, &backwardsClock{now: time.Unix(100, 0)}, identity(t))
	require.NoError(t, err)
	_, err = test.HandleKey(keys("a")[0])
	require.ErrorIs(t, err, ErrClock)
}

func TestFrame(t *testing.T) {
	test, err := NewTest([]string{"ab", "cd", "ef"}, newTickClock(time.Second), identity(t))
	require.NoError(t, err)
	feed(t, test, "ab cx")

	f := test.Frame()
	assert.Equal(t, []string{"ab"}, f.Committed)
	assert.Equal(t, []string{"ef"}, f.Remaining)
	assert.Equal(t, []word.Cell{
		{Rune: 'c', State: word.CellCorrect},
		{Rune: 'x', State: word.CellIncorrect},
	}, f.Current)
	assert.Equal(t, 1, f.Finished)
	assert.Equal(t, 3, f.Total)
	assert.Equal(t, 'x', f.Pressed)
	assert.True(t, f.HasPressedKey)
	assert.Equal(t, keymap.KeyB, f.PressedKey)
}

func TestNewTestNeedsWords(t *testing.T) {
	_, err := NewTest(nil, SystemClock, identity(t))
	require.Error(t, err)
}

func TestStopwatchLap(t *testing.T) {
	sw := NewStopwatch(newTickClock(250 * time.Millisecond))
	for i := 0; i < 3; i++ {
		d, err := sw.Lap()
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, d)
	}
}

func TestSystemClockLapIsNonNegative(t *testing.T) {
	sw := NewStopwatch(SystemClock)
	d, err := sw.Lap()
	require.NoError(t, err)
	assert.False(t, math.Signbit(float64(d)))
}
