// Package lesson runs graduated typing lessons.
package lesson

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/sampler"
)

// Lesson is one practice round restricted to an alphabet.
type Lesson struct {
	Name     string
	Alphabet string
}

// Allowed returns the lesson alphabet as a set.
func (l Lesson) Allowed() sampler.Alphabet {
	return sampler.ParseAlphabet(l.Alphabet)
}

// Default returns the built-in lessons: the home row first, then the rest
// of the alphabet in two groups, then everything.
func Default() []Lesson {
	return []Lesson{
		{Name: "home row, 8 keys", Alphabet: "aoeuhtns"},
		{Name: "home row, 10 keys", Alphabet: "aoeuidhtns"},
		{Name: "home row + c f k l m p r v", Alphabet: "aoeuidhtnscfklmprv"},
		{Name: "home row + b g j q w x y z", Alphabet: "aoeuidhtnsbgjqwxyz"},
		{Name: "full alphabet", Alphabet: "abcdefghijklmnopqrstuvwxyz"},
	}
}

// FromConfig converts configured lessons, falling back to Default when none
// are configured.
func FromConfig(cfgs []model.LessonConfig) []Lesson {
	if len(cfgs) == 0 {
		return Default()
	}
	lessons := make([]Lesson, 0, len(cfgs))
	for i, c := range cfgs {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = fmt.Sprintf("lesson %d", i+1)
		}
		lessons = append(lessons, Lesson{Name: name, Alphabet: c.Alphabet})
	}
	return lessons
}

// Validate checks that lessons exist, have alphabets and never shrink in
// coverage from one lesson to the next.
func Validate(lessons []Lesson) error {
	if len(lessons) == 0 {
		return fmt.Errorf("no lessons configured")
	}
	prev := 0
	for i, l := range lessons {
		size := len(l.Allowed())
		if size == 0 {
			return fmt.Errorf("lesson %d (%s) has an empty alphabet", i+1, l.Name)
		}
		if size < prev {
			return fmt.Errorf("lesson %d (%s) covers %d characters, fewer than the %d before it", i+1, l.Name, size, prev)
		}
		prev = size
	}
	return nil
}
