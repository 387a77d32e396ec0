package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Remapper translates characters typed on a source layout into the
// characters printed at the same positions on a target layout.
type Remapper struct {
	source *Layout
	target *Layout
	table  map[rune]rune
}

// NewRemapper builds the positional table between two built-in layouts.
func NewRemapper(source, target string) (*Remapper, error) {
	src, err := Lookup(source)
	if err != nil {
		return nil, err
	}
	dst, err := Lookup(target)
	if err != nil {
		return nil, err
	}
	table := make(map[rune]rune, 2*KeyCount)
	for k := Key(0); k < keyCount; k++ {
		table[src.lower[k]] = dst.lower[k]
		table[src.upper[k]] = dst.upper[k]
	}
	return &Remapper{source: src, target: dst, table: table}, nil
}

// Source returns the layout the keyboard is set to.
func (m *Remapper) Source() *Layout {
	return m.source
}

// Target returns the layout being practised.
func (m *Remapper) Target() *Layout {
	return m.target
}

// Rune maps a single character. Characters outside the source layout, such
// as space, are returned unchanged.
func (m *Remapper) Rune(r rune) rune {
	if mapped, ok := m.table[r]; ok {
		return mapped
	}
	return r
}

// Remap translates the runes of a key event. Non-character keys are
// returned unchanged.
func (m *Remapper) Remap(msg tea.KeyMsg) tea.KeyMsg {
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return msg
	}
	runes := make([]rune, len(msg.Runes))
	for i, r := range msg.Runes {
		runes[i] = m.Rune(r)
	}
	msg.Runes = runes
	return msg
}

// KeyFor returns the display key of a target-layout character.
func (m *Remapper) KeyFor(r rune) (Key, bool) {
	return m.target.KeyFor(r)
}
