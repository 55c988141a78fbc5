package game

// Row and column steps for horizontal, vertical and both diagonal lines.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CheckWin reports whether p has Connect pieces in a line anywhere on the board.
func (b Board) CheckWin(p Player) bool {
	if p == None {
		return false
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b[r][c] != p {
				continue
			}
			for _, d := range directions {
				if b.line(r, c, d[0], d[1], p) {
					return true
				}
			}
		}
	}
	return false
}

func (b Board) line(r, c, dr, dc int, p Player) bool {
	for i := 1; i < Connect; i++ {
		rr, cc := r+i*dr, c+i*dc
		if rr < 0 || rr >= Rows || cc < 0 || cc >= Cols || b[rr][cc] != p {
			return false
		}
	}
	return true
}

func (b Board) IsFull() bool {
	for c := 0; c < Cols; c++ {
		if b[0][c] == None {
			return false
		}
	}
	return true
}

func (b Board) IsTerminal() bool {
	return b.CheckWin(First) || b.CheckWin(Second) || b.IsFull()
}

// Winner returns the player with a line, or None for an unfinished or drawn game.
func (b Board) Winner() Player {
	switch {
	case b.CheckWin(First):
		return First
	case b.CheckWin(Second):
		return Second
	default:
		return None
	}
}
