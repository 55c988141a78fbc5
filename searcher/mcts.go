package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/knowledge"
	"time"

	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	duration    time.Duration
	timed       bool
	episodes    int
	cutoff      int
	exploration float64
	batch       int
	evaluate    game.Evaluate
	rules       game.Rules
	knowledge   knowledge.Base
	rng         *rand.Rand
	metrics     metrics.Collector
	tree        *tree
}

// WithDuration bounds each search by wall-clock time. A zero duration is
// valid and runs no iterations at all.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration < 0 {
			panic("search duration must not be negative")
		}
		m.duration = duration
		m.timed = true
	}
}

// WithEpisodes bounds each search by an exact number of iterations.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff caps the number of random plies in a rollout.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithBatchSize sets how many iterations run between clock checks.
func WithBatchSize(batch int) Option {
	return func(m *MCTS) {
		if batch > 0 {
			m.batch = batch
		}
	}
}

// WithEvaluationFn scores rollouts stopped by the cutoff.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(m *MCTS) {
		if rules != nil {
			m.rules = rules
		}
	}
}

// WithKnowledge seeds new nodes from kb and merges every backed up reward into it.
func WithKnowledge(kb knowledge.Base) Option {
	return func(m *MCTS) {
		if kb != nil {
			m.knowledge = kb
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = NewRand(seed)
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		cutoff:      MaxCutoff,
		exploration: DefaultExploration,
		batch:       DefaultBatchSize,
		evaluate:    game.EvaluateDraw,
		rules:       game.NewStandardRules(),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && !m.timed {
		panic("Must specify search episodes or duration")
	}
	if m.rng == nil {
		m.rng = NewRand(uint64(time.Now().UnixNano()))
	}
	return m
}

// Search grows a fresh tree from board with player to move and returns the
// most visited root column. When no child was expanded it falls back to the
// first legal column, or NoMove on a full board.
func (m *MCTS) Search(board game.Board, player game.Player) (int, metrics.SearchMetric) {
	m.metrics.Start(m.cutoff)
	t := newTree(board, player, m.rules)
	m.tree = t
	if t.seed(0, m.knowledge) {
		m.metrics.AddKnowledgeHit()
	}

	// Completed iterations always finish their backup; the clock is only
	// read between batches.
	deadline := time.Now().Add(m.duration)
	for episode := 0; ; episode++ {
		if m.episodes > 0 && episode >= m.episodes {
			break
		}
		if m.timed && episode%m.batch == 0 && !time.Now().Before(deadline) {
			break
		}
		m.simulate(t)
		m.metrics.AddEpisode()
	}

	m.metrics.ObserveTree(t.size(), t.maxDepth)
	metric := m.metrics.Complete()

	if best, ok := t.mostVisited(0); ok {
		return t.get(best).action, metric
	}
	if actions := m.rules.ValidActions(board); len(actions) > 0 {
		return actions[0], metric
	}
	return NoMove, metric
}

func (m *MCTS) simulate(t *tree) {
	leaf := m.selectThenExpand(t)
	n := t.get(leaf)
	result := m.rollout(n.board, n.player)
	m.backup(t, leaf, result)
}

func (m *MCTS) selectThenExpand(t *tree) NodeID {
	id := NodeID(0)
	for len(t.get(id).untried) == 0 && len(t.get(id).children) > 0 {
		id = t.selectChild(id, m.exploration)
	}
	if len(t.get(id).untried) > 0 {
		id = t.expand(id)
		if t.seed(id, m.knowledge) {
			m.metrics.AddKnowledgeHit()
		}
	}
	return id
}

func (m *MCTS) rollout(board game.Board, player game.Player) outcome {
	if m.rules.CheckWin(board, player) {
		m.metrics.AddFullPlayout()
		return outcome{player: player, score: Win}
	}

	// Rollout till game over or for cutoff number of moves
	for depth := 0; ; depth++ {
		if m.rules.CheckWin(board, player.Opponent()) {
			m.metrics.AddFullPlayout()
			return outcome{player: player.Opponent(), score: Win}
		}
		moves := m.rules.ValidActions(board)
		if len(moves) == 0 {
			m.metrics.AddFullPlayout()
			return outcome{player: player, score: Draw}
		}
		if depth >= m.cutoff {
			return outcome{player: player, score: m.evaluate(board, player)}
		}
		move := moves[m.rng.Intn(len(moves))] // Random rollout policy
		board = m.rules.ApplyMove(board, move, player)
		player = player.Opponent()
	}
}

// backup credits every node from leaf up to, but excluding, the root with
// the reward of the player who moved into it. The root only counts the visit.
func (m *MCTS) backup(t *tree, leaf NodeID, result outcome) {
	for id := leaf; id != 0; {
		n := t.get(id)
		reward := result.rewardFor(n.mover())
		t.update(id, reward)
		if m.knowledge != nil {
			m.knowledge.Merge(n.key, reward, 1)
		}
		id = n.parent
	}
	t.root().visits++
}
