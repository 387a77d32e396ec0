// Package keymap maps characters between keyboard layouts.
package keymap

// Key identifies a physical key independent of shift state. Constants are
// named by their position code (the legend a US QWERTY board prints there).
type Key uint8

// Number row.
const (
	Backquote Key = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Digit0
	Minus
	Equal

	// Top row.
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	BracketLeft
	BracketRight
	Backslash

	// Home row.
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	Semicolon
	Quote

	// Bottom row.
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	Comma
	Period
	Slash

	keyCount
)

// KeyCount is the number of physical keys a Layout describes.
const KeyCount = int(keyCount)

var rowSizes = [4]int{13, 13, 11, 10}

var keyNames = [keyCount]string{
	"Backquote", "Digit1", "Digit2", "Digit3", "Digit4", "Digit5", "Digit6",
	"Digit7", "Digit8", "Digit9", "Digit0", "Minus", "Equal",
	"KeyQ", "KeyW", "KeyE", "KeyR", "KeyT", "KeyY", "KeyU", "KeyI", "KeyO",
	"KeyP", "BracketLeft", "BracketRight", "Backslash",
	"KeyA", "KeyS", "KeyD", "KeyF", "KeyG", "KeyH", "KeyJ", "KeyK", "KeyL",
	"Semicolon", "Quote",
	"KeyZ", "KeyX", "KeyC", "KeyV", "KeyB", "KeyN", "KeyM", "Comma", "Period",
	"Slash",
}

// String returns the position code of the key.
func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Rows returns the keys of the display keyboard, one slice per row from the
// number row down.
func Rows() [][]Key {
	rows := make([][]Key, 0, len(rowSizes))
	start := 0
	for _, size := range rowSizes {
		row := make([]Key, size)
		for i := range row {
			row[i] = Key(start + i)
		}
		rows = append(rows, row)
		start += size
	}
	return rows
}
