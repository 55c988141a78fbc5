package game

// Rules is the set of operations a search needs from the game.
type Rules interface {
	ValidActions(b Board) []int
	ApplyMove(b Board, column int, p Player) Board
	CheckWin(b Board, p Player) bool
	IsTerminal(b Board) bool
}

// StandardRules plays connect four with gravity on the 6x7 board.
type StandardRules struct{}

func NewStandardRules() StandardRules {
	return StandardRules{}
}

func (StandardRules) ValidActions(b Board) []int {
	return b.ValidActions()
}

func (StandardRules) ApplyMove(b Board, column int, p Player) Board {
	return ApplyMove(b, column, p)
}

func (StandardRules) CheckWin(b Board, p Player) bool {
	return b.CheckWin(p)
}

func (StandardRules) IsTerminal(b Board) bool {
	return b.IsTerminal()
}
