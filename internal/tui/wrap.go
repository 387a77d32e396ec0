// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/lesson"
	"github.com/verte-zerg/keydrill/internal/word"
)

// typedSpaceRune stands in for a space typed inside a word.
const typedSpaceRune = '␣'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func newStyledRune(style lipgloss.Style, r rune) styledRune {
	return styledRune{
		s:     style.Render(string(r)),
		width: runewidth.RuneWidth(r),
	}
}

func separator(style lipgloss.Style) styledRune {
	item := newStyledRune(style, ' ')
	item.isSpace = true
	return item
}

// buildStyledRunes lays out the confirmed words, the word in progress and
// the words still to come as one run of styled cells. The cursor sits on
// the first untyped cell, or on the separator once the word is complete.
func buildStyledRunes(f lesson.Frame) []styledRune {
	out := make([]styledRune, 0, 64)
	for _, w := range f.Committed {
		for _, r := range w {
			out = append(out, newStyledRune(committedStyle, r))
		}
		out = append(out, separator(committedStyle))
	}

	cursor := cursorIndex(f.Current)
	for i, c := range f.Current {
		displayed := c.Rune
		style := currentWordStyle
		switch c.State {
		case word.CellCorrect:
			style = correctStyle
		case word.CellIncorrect, word.CellOverflow:
			style = incorrectStyle
		}
		if c.State != word.CellUntyped && displayed == ' ' {
			displayed = typedSpaceRune
		}
		if i == cursor {
			style = cursorStyle
		}
		out = append(out, newStyledRune(style, displayed))
	}
	if cursor < 0 {
		out = append(out, separator(pendingStyle.Underline(true)))
	} else if len(f.Remaining) > 0 {
		out = append(out, separator(pendingStyle))
	}

	for i, w := range f.Remaining {
		if i > 0 {
			out = append(out, separator(pendingStyle))
		}
		for _, r := range w {
			out = append(out, newStyledRune(pendingStyle, r))
		}
	}
	return out
}

func cursorIndex(cells []word.Cell) int {
	for i, c := range cells {
		if c.State == word.CellUntyped {
			return i
		}
	}
	return -1
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
