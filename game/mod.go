package game

// Board geometry.
const (
	Rows    = 6
	Cols    = 7
	Cells   = Rows * Cols
	Connect = 4
	Center  = Cols / 2
)

// Player identifies a side by sign. None marks an empty cell.
type Player int8

const (
	None   Player = 0
	First  Player = 1
	Second Player = -1
)

func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case First:
		return "X"
	case Second:
		return "O"
	default:
		return "."
	}
}

// Board is a 6x7 grid held by value, so every move yields a fresh copy.
// Row 0 is the top row; pieces fall towards row Rows-1.
type Board [Rows][Cols]Player

// Key is the canonical lookup key of a position: the cells in row-major
// order followed by the player to move.
type Key [Cells + 1]byte

// Evaluate scores a non-terminal board between 0 (certain loss) and 1
// (certain win) from the perspective of the player to move.
type Evaluate func(b Board, toMove Player) float64
