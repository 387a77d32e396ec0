package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrUnknownLayout is returned when a layout name is not built in.
var ErrUnknownLayout = errors.New("unknown layout")

// Layout holds the unshifted and shifted character printed on every key.
type Layout struct {
	name  string
	lower [keyCount]rune
	upper [keyCount]rune
	keys  map[rune]Key
}

type layoutRows struct {
	lower [4]string
	upper [4]string
}

var builtinRows = map[string]layoutRows{
	"qwerty": {
		lower: [4]string{"`1234567890-=", `qwertyuiop[]\`, "asdfghjkl;'", "zxcvbnm,./"},
		upper: [4]string{"~!@#$%^&*()_+", "QWERTYUIOP{}|", `ASDFGHJKL:"`, "ZXCVBNM<>?"},
	},
	"dvorak": {
		lower: [4]string{"`1234567890[]", `',.pyfgcrl/=\`, "aoeuidhtns-", ";qjkxbmwvz"},
		upper: [4]string{"~!@#$%^&*(){}", `"<>PYFGCRL?+|`, "AOEUIDHTNS_", ":QJKXBMWVZ"},
	},
	"colemak": {
		lower: [4]string{"`1234567890-=", `qwfpgjluy;[]\`, "arstdhneio'", "zxcvbkm,./"},
		upper: [4]string{"~!@#$%^&*()_+", "QWFPGJLUY:{}|", `ARSTDHNEIO"`, "ZXCVBKM<>?"},
	},
}

var layouts = map[string]*Layout{}

func init() {
	for name, rows := range builtinRows {
		layout, err := newLayout(name, rows)
		if err != nil {
			panic(err)
		}
		layouts[name] = layout
	}
}

func newLayout(name string, rows layoutRows) (*Layout, error) {
	l := &Layout{name: name, keys: make(map[rune]Key, 2*KeyCount)}
	if err := fillRows(l.lower[:], rows.lower); err != nil {
		return nil, fmt.Errorf("layout %s: unshifted: %w", name, err)
	}
	if err := fillRows(l.upper[:], rows.upper); err != nil {
		return nil, fmt.Errorf("layout %s: shifted: %w", name, err)
	}
	for k := Key(0); k < keyCount; k++ {
		for _, r := range []rune{l.lower[k], l.upper[k]} {
			if prev, ok := l.keys[r]; ok {
				return nil, fmt.Errorf("layout %s: %q printed on both %s and %s", name, r, prev, k)
			}
			l.keys[r] = k
		}
	}
	return l, nil
}

func fillRows(dst []rune, rows [4]string) error {
	pos := 0
	for i, row := range rows {
		runes := []rune(row)
		if len(runes) != rowSizes[i] {
			return fmt.Errorf("row %d has %d keys, want %d", i, len(runes), rowSizes[i])
		}
		copy(dst[pos:], runes)
		pos += len(runes)
	}
	return nil
}

// Lookup returns the built-in layout with the given name.
func Lookup(name string) (*Layout, error) {
	l, ok := layouts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownLayout, name, strings.Join(Names(), ", "))
	}
	return l, nil
}

// Names lists the built-in layouts in sorted order.
func Names() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the layout name.
func (l *Layout) Name() string {
	return l.name
}

// Char returns the character printed on k for the given shift state.
func (l *Layout) Char(k Key, shifted bool) rune {
	if shifted {
		return l.upper[k]
	}
	return l.lower[k]
}

// KeyFor returns the key that prints r in either shift state.
func (l *Layout) KeyFor(r rune) (Key, bool) {
	k, ok := l.keys[r]
	return k, ok
}

// Glyph returns the display label of k: letters show the unshifted
// character only, other keys show both characters.
func (l *Layout) Glyph(k Key) string {
	lower, upper := l.lower[k], l.upper[k]
	if unicode.IsLetter(lower) && unicode.ToUpper(lower) == upper {
		return string(lower)
	}
	return string([]rune{lower, upper})
}
