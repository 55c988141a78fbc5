package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/knowledge"
	"connect4/searcher"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(p *MCTSPolicy)

// WithKnowledgeBase makes the policy search with kb instead of loading its
// own store on Mount. Several policies may share one knowledge.Shared.
func WithKnowledgeBase(kb knowledge.Base) Option {
	return func(p *MCTSPolicy) {
		p.kb = kb
		p.injected = kb != nil
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(p *MCTSPolicy) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// MCTSPolicy plays by time-bounded Monte Carlo tree search, optionally
// backed by a persistent knowledge store and a few tactical shortcuts.
type MCTSPolicy struct {
	cfg      Config
	evaluate game.Evaluate
	budget   time.Duration
	kb       knowledge.Base
	injected bool
	rng      *rand.Rand
	last     metrics.MoveMetric
}

func NewMCTSPolicy(cfg Config, options ...Option) (*MCTSPolicy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy config: %w", err)
	}
	evaluate, _ := cfg.evaluate()
	p := &MCTSPolicy{cfg: cfg, evaluate: evaluate}
	for _, option := range options {
		option(p)
	}
	if p.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		p.rng = searcher.NewRand(seed)
	}
	return p, nil
}

// Mount sets the per-move budget and, with persistence on, loads the
// knowledge store. A store that cannot be read is replaced by an empty one.
func (p *MCTSPolicy) Mount(timeBudget time.Duration) error {
	if timeBudget < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeBudget, timeBudget)
	}
	p.budget = timeBudget
	if p.cfg.Persistence && !p.injected {
		p.kb = knowledge.LoadFile(p.cfg.KnowledgePath)
	}
	return nil
}

// Act returns the column to play. The player to move is derived from the
// piece count. A full board yields searcher.NoMove.
func (p *MCTSPolicy) Act(board game.Board) int {
	mover := board.ToMove()
	p.last = metrics.MoveMetric{Player: int(mover)}

	if len(board.ValidActions()) == 0 {
		p.last.Column, p.last.Heuristic = searcher.NoMove, HeuristicNone
		return searcher.NoMove
	}

	if p.cfg.Heuristics {
		if column, label, ok := shortcut(board, mover, p.cfg.CenterPreference); ok {
			p.last.Column, p.last.Heuristic = column, label
			return column
		}
	}

	budget := p.budgetFor(board.PieceCount())
	mcts := searcher.NewMCTS(p.searchOptions(budget)...)
	column, metric := mcts.Search(board, mover)
	if p.cfg.Temperature > 0 {
		if sampled, ok := sample(mcts.Policy(), p.cfg.Temperature, p.rng); ok {
			column = sampled
		}
	}

	log.Debug().
		Int("column", column).
		Int("episodes", metric.Episodes).
		Dur("budget", budget).
		Msg("searched move")

	p.last.Column = column
	p.last.SearchMetric = metric
	return column
}

func (p *MCTSPolicy) searchOptions(budget time.Duration) []searcher.Option {
	options := []searcher.Option{
		searcher.WithDuration(budget),
		searcher.WithExploration(p.cfg.Exploration),
		searcher.WithBatchSize(p.cfg.BatchSize),
		searcher.WithEvaluationFn(p.evaluate),
		searcher.WithRand(p.rng),
		searcher.WithMetrics(),
	}
	if p.cfg.RolloutCap > 0 {
		options = append(options, searcher.WithCutoff(p.cfg.RolloutCap))
	}
	if p.kb != nil {
		options = append(options, searcher.WithKnowledge(p.kb))
	}
	return options
}

// budgetFor caps the mounted budget at the configured ceiling and shrinks
// it once the board is mostly full.
func (p *MCTSPolicy) budgetFor(pieces int) time.Duration {
	budget := p.budget
	if p.cfg.TimeCeiling > 0 && budget > p.cfg.TimeCeiling {
		budget = p.cfg.TimeCeiling
	}
	if p.cfg.LateGamePieces > 0 && pieces >= p.cfg.LateGamePieces {
		budget = time.Duration(float64(budget) * p.cfg.LateGameFactor)
	}
	return budget
}

func (p *MCTSPolicy) LastMove() metrics.MoveMetric {
	return p.last
}

// Knowledge exposes the store the policy searches with, nil when it has none.
func (p *MCTSPolicy) Knowledge() knowledge.Base {
	return p.kb
}

func (p *MCTSPolicy) Config() Config {
	return p.cfg
}

// SaveKnowledge writes the store pruned to entries with at least minVisits
// visits, keeping at most maxStates of the most visited.
func (p *MCTSPolicy) SaveKnowledge(path string, minVisits, maxStates int) error {
	if p.kb == nil {
		return fmt.Errorf("policy has no knowledge to save")
	}
	if path == "" {
		path = p.cfg.KnowledgePath
	}
	pruned := p.kb.Snapshot().Prune(minVisits, maxStates)
	log.Info().
		Int("states", p.kb.Len()).
		Int("kept", pruned.Len()).
		Msg("pruned knowledge")
	return knowledge.SaveFile(path, pruned)
}
