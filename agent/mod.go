package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"errors"
	"time"
)

var ErrNegativeBudget = errors.New("time budget must not be negative")

// Policy picks a column for whichever side is to move on the board.
// Mount is called once before the first Act.
type Policy interface {
	Mount(timeBudget time.Duration) error
	Act(board game.Board) int
}

// Reporter is implemented by policies that can describe their last move.
type Reporter interface {
	LastMove() metrics.MoveMetric
}

// Heuristic labels for moves decided without a search.
const (
	HeuristicWin    = "win"
	HeuristicBlock  = "block"
	HeuristicCenter = "center"
	HeuristicNone   = "no-moves"
)
