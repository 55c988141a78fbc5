package agent

import (
	"connect4/game"

	"golang.org/x/exp/slices"
)

// winningColumn finds the first column where p completes a line.
func winningColumn(b game.Board, p game.Player) (int, bool) {
	for _, c := range b.ValidActions() {
		if game.ApplyMove(b, c, p).CheckWin(p) {
			return c, true
		}
	}
	return 0, false
}

// shortcut returns a move that needs no search: an immediate win, then a
// block of the opponent's immediate win, then the center column on each
// side's first move.
func shortcut(b game.Board, mover game.Player, center bool) (int, string, bool) {
	if c, ok := winningColumn(b, mover); ok {
		return c, HeuristicWin, true
	}
	if c, ok := winningColumn(b, mover.Opponent()); ok {
		return c, HeuristicBlock, true
	}
	if center && b.PieceCount() < 2 && slices.Contains(b.ValidActions(), game.Center) {
		return game.Center, HeuristicCenter, true
	}
	return 0, "", false
}
