package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRespectsAlphabet(t *testing.T) {
	s := NewSeeded(1)
	words, err := s.Sample([]string{"ooze", "fox"}, ParseAlphabet("aoeuz"), 500)
	require.NoError(t, err)
	require.Len(t, words, 500)
	for _, w := range words {
		assert.Equal(t, "ooze", w)
	}
}

func TestSampleRejectsWordsWithOneForeignRune(t *testing.T) {
	s := NewSeeded(1)
	words, err := s.Sample([]string{"ooze", "fox"}, ParseAlphabet("aoeu"), 5)
	require.ErrorIs(t, err, ErrSamplingExhausted)
	assert.Empty(t, words)
}

func TestSampleFollowsCorpusChanges(t *testing.T) {
	s := NewSeeded(1)
	allowed := ParseAlphabet("aoeuz")
	first, err := s.Sample([]string{"ooze"}, allowed, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ooze"}, first)

	second, err := s.Sample([]string{"zoe"}, allowed, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"zoe", "zoe", "zoe"}, second)

	_, err = s.Sample([]string{"fox"}, allowed, 1)
	require.ErrorIs(t, err, ErrSamplingExhausted)
}

func TestSampleCorpusEditedInPlace(t *testing.T) {
	s := NewSeeded(1)
	allowed := ParseAlphabet("ao")
	corpus := []string{"aa"}
	_, err := s.Sample(corpus, allowed, 1)
	require.NoError(t, err)

	corpus[0] = "oo"
	words, err := s.Sample(corpus, allowed, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"oo", "oo"}, words)
}

func TestSampleDrawsEveryEligibleWord(t *testing.T) {
	s := NewSeeded(42)
	seen := map[string]int{}
	for i := 0; i < 1000; i++ {
		words, err := s.Sample([]string{"aa", "oo", "zoo"}, ParseAlphabet("ao"), 2)
		require.NoError(t, err)
		require.Len(t, words, 2)
		for _, w := range words {
			seen[w]++
		}
	}
	assert.NotContains(t, seen, "zoo")
	assert.Positive(t, seen["aa"])
	assert.Positive(t, seen["oo"])
}

func TestSampleSeededIsDeterministic(t *testing.T) {
	corpus := []string{"the", "hat", "sun", "nut", "tone"}
	allowed := ParseAlphabet("aoeuhtns")
	a, err := NewSeeded(7).Sample(corpus, allowed, 20)
	require.NoError(t, err)
	b, err := NewSeeded(7).Sample(corpus, allowed, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleExhausted(t *testing.T) {
	s := NewSeeded(1)
	_, err := s.Sample([]string{"fox", "jazz"}, ParseAlphabet("aoeu"), 3)
	require.ErrorIs(t, err, ErrSamplingExhausted)
	assert.Contains(t, err.Error(), `"aeou"`)
}

func TestSampleZeroCount(t *testing.T) {
	s := NewSeeded(1)
	words, err := s.Sample(nil, ParseAlphabet("a"), 0)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestPoolSkipsEmptyWords(t *testing.T) {
	p := NewPool([]string{"", "a", "a", "b"}, ParseAlphabet("a"))
	assert.Equal(t, 2, p.Len())
}

func TestAlphabetCovers(t *testing.T) {
	a := ParseAlphabet("aoeuhtns")
	assert.True(t, a.Covers("the"))
	assert.True(t, a.Covers(""))
	assert.False(t, a.Covers("fox"))
	assert.Equal(t, "aehnostu", a.String())
}
