package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/keymap"
)

const keyCellWidth = 4

var keyboardIndent = [...]int{0, 6, 8, 10}

// renderKeyboard draws the target layout with the pressed key highlighted.
func renderKeyboard(layout *keymap.Layout, pressed keymap.Key, hasPressed bool) string {
	rows := keymap.Rows()
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		var b strings.Builder
		if i < len(keyboardIndent) {
			b.WriteString(strings.Repeat(" ", keyboardIndent[i]))
		}
		for _, k := range row {
			style := keyStyle
			if hasPressed && k == pressed {
				style = pressedKeyStyle
			}
			b.WriteString(style.Render(centerText(layout.Glyph(k), keyCellWidth)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func centerText(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
