package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

// MaxMoves bounds a game; a connect four board fills after this many moves.
const MaxMoves = game.Cells

type Engine interface {
	// Run plays a game till there's a winner or the board is full
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
