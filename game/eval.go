package game

// EvaluateDraw scores every cutoff position as a draw.
func EvaluateDraw(Board, Player) float64 {
	return 0.5
}

// EvaluateThreats weighs the open windows of Connect cells each side could
// still complete. A window counts for a player only when the opponent has no
// piece in it; three pieces weigh four times as much as two.
func EvaluateThreats(b Board, toMove Player) float64 {
	mine, theirs := 0.0, 0.0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			for _, d := range directions {
				own, opp, ok := b.window(r, c, d[0], d[1], toMove)
				if !ok {
					continue
				}
				switch {
				case opp == 0:
					mine += weight(own)
				case own == 0:
					theirs += weight(opp)
				}
			}
		}
	}
	if mine+theirs == 0 {
		return 0.5
	}
	return 0.5 + (mine-theirs)/(2*(mine+theirs))
}

func (b Board) window(r, c, dr, dc int, p Player) (own, opp int, ok bool) {
	endR, endC := r+(Connect-1)*dr, c+(Connect-1)*dc
	if endR < 0 || endR >= Rows || endC < 0 || endC >= Cols {
		return 0, 0, false
	}
	for i := 0; i < Connect; i++ {
		switch b[r+i*dr][c+i*dc] {
		case p:
			own++
		case p.Opponent():
			opp++
		}
	}
	return own, opp, true
}

func weight(pieces int) float64 {
	switch pieces {
	case 2:
		return 1
	case 3:
		return 4
	default:
		return 0
	}
}
