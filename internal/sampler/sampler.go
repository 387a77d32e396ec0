// Package sampler draws lesson words restricted to an allowed alphabet.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"time"
)

// ErrSamplingExhausted is returned when no corpus word fits the alphabet.
var ErrSamplingExhausted = errors.New("no words match the allowed alphabet")

// Alphabet is the set of characters a lesson allows.
type Alphabet map[rune]struct{}

// ParseAlphabet builds an alphabet from the characters of s.
func ParseAlphabet(s string) Alphabet {
	a := make(Alphabet, len(s))
	for _, r := range s {
		a[r] = struct{}{}
	}
	return a
}

// Covers reports whether every character of word is in the alphabet.
func (a Alphabet) Covers(word string) bool {
	for _, r := range word {
		if _, ok := a[r]; !ok {
			return false
		}
	}
	return true
}

// String returns the characters in sorted order.
func (a Alphabet) String() string {
	runes := make([]rune, 0, len(a))
	for r := range a {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

// Pool is the eligible subset of a corpus for one alphabet. Duplicates in
// the corpus are kept so draws follow corpus frequency.
type Pool struct {
	words []string
}

// NewPool filters the corpus once.
func NewPool(corpus []string, allowed Alphabet) *Pool {
	words := make([]string, 0, len(corpus))
	for _, w := range corpus {
		if w != "" && allowed.Covers(w) {
			words = append(words, w)
		}
	}
	return &Pool{words: words}
}

// Len is the number of eligible words.
func (p *Pool) Len() int {
	return len(p.words)
}

// Sampler selects words uniformly from alphabet pools. Pools are cached
// per alphabet for the corpus last sampled from.
type Sampler struct {
	rnd    *rand.Rand
	corpus []string
	pools  map[string]*Pool
}

// New returns a Sampler seeded with the current time.
func New() *Sampler {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Sampler with a fixed seed.
func NewSeeded(seed int64) *Sampler {
	return &Sampler{
		rnd:   rand.New(rand.NewSource(seed)),
		pools: map[string]*Pool{},
	}
}

// Sample returns count words drawn with replacement from the corpus words
// whose characters all belong to allowed. A different corpus than the
// previous call drops every cached pool.
func (s *Sampler) Sample(corpus []string, allowed Alphabet, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	if !slices.Equal(s.corpus, corpus) {
		s.corpus = slices.Clone(corpus)
		clear(s.pools)
	}
	key := allowed.String()
	pool, ok := s.pools[key]
	if !ok {
		pool = NewPool(corpus, allowed)
		s.pools[key] = pool
	}
	words, err := s.Draw(pool, count)
	if err != nil {
		return nil, fmt.Errorf("%w %q", err, key)
	}
	return words, nil
}

// Draw returns count uniform draws from the pool.
func (s *Sampler) Draw(pool *Pool, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	if pool.Len() == 0 {
		return nil, ErrSamplingExhausted
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, pool.words[s.rnd.Intn(len(pool.words))])
	}
	return result, nil
}
