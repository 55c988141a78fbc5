package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// RandomPolicy plays a uniformly random legal column.
type RandomPolicy struct {
	rng  *rand.Rand
	last metrics.MoveMetric
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomPolicy{rng: searcher.NewRand(seed)}
}

func (p *RandomPolicy) Mount(timeBudget time.Duration) error {
	if timeBudget < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeBudget, timeBudget)
	}
	return nil
}

func (p *RandomPolicy) Act(board game.Board) int {
	p.last = metrics.MoveMetric{Player: int(board.ToMove()), Column: searcher.NoMove}
	actions := board.ValidActions()
	if len(actions) == 0 {
		return searcher.NoMove
	}
	p.last.Column = actions[p.rng.Intn(len(actions))]
	return p.last.Column
}

func (p *RandomPolicy) LastMove() metrics.MoveMetric {
	return p.last
}
