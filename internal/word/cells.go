package word

// CellState classifies one displayed character.
type CellState uint8

const (
	CellUntyped CellState = iota
	CellCorrect
	CellIncorrect
	// CellOverflow is a character typed past the end of the target.
	CellOverflow
)

// Cell is one displayed character of a word in progress. Typed positions
// show the typed rune, untyped positions the target rune.
type Cell struct {
	Rune  rune
	State CellState
}

// Cells returns display data for the word: one cell per target position,
// followed by overflow cells.
func (w *Word) Cells() []Cell {
	n := len(w.target)
	if len(w.typed) > n {
		n = len(w.typed)
	}
	cells := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(w.typed):
			cells = append(cells, Cell{Rune: w.target[i], State: CellUntyped})
		case i >= len(w.target):
			cells = append(cells, Cell{Rune: w.typed[i], State: CellOverflow})
		case w.typed[i] == w.target[i]:
			cells = append(cells, Cell{Rune: w.typed[i], State: CellCorrect})
		default:
			cells = append(cells, Cell{Rune: w.typed[i], State: CellIncorrect})
		}
	}
	return cells
}
