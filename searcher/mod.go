package searcher

import "connect4/game"

// Rewards from the perspective of the player who made a move.
const (
	Win  = 1.0
	Loss = 0.0
	Draw = 0.5
)

// DefaultExploration is the UCB1 exploration constant, roughly sqrt(2).
const DefaultExploration = 1.414

// MaxCutoff lets every rollout run until the board is full.
const MaxCutoff = game.Cells

// DefaultBatchSize is the number of iterations run between clock checks.
const DefaultBatchSize = 50

// NoMove is returned when a position has no legal move at all.
const NoMove = -1

// outcome is a rollout result: score is the value for player, and 1-score
// is the value for the opponent.
type outcome struct {
	player game.Player
	score  float64
}

func (o outcome) rewardFor(mover game.Player) float64 {
	if mover == o.player {
		return o.score
	}
	return 1 - o.score
}
