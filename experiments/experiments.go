package experiments

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/knowledge"
	"connect4/meta"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Opponents a learner can train against.
const (
	OpponentPlain  = "plain"
	OpponentRandom = "random"
)

// Agent IDs used in the CSV records.
const (
	learnerID  = 1
	opponentID = 2
)

type TrainConfig struct {
	Episodes      int
	TimeBudget    time.Duration
	KnowledgePath string
	MinVisits     int
	MaxStates     int
	Workers       int
	Opponent      string
	Learner       agent.Config
	RecordsDir    string // Empty disables CSV records
	Seed          uint64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Episodes:      meta.EPISODES,
		TimeBudget:    meta.TIME_BUDGET,
		KnowledgePath: meta.KNOWLEDGE_PATH,
		MinVisits:     meta.MIN_VISITS,
		MaxStates:     meta.MAX_STATES,
		Workers:       meta.WORKERS,
		Opponent:      OpponentPlain,
		Learner:       agent.DefaultConfig(),
	}
}

type Summary struct {
	Episodes      int
	LearnerWins   int
	OpponentWins  int
	Draws         int
	InitialStates int
	FinalStates   int
	SavedStates   int
	RecordsDir    string
}

type episodeResult struct {
	id          int
	learnerSeat game.Player
	winner      game.Player
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// Train plays a cycle of games between a knowledge-backed learner and an
// opponent, alternating who opens, then saves the pruned knowledge.
func Train(cfg TrainConfig) (Summary, error) {
	if err := validate(cfg); err != nil {
		return Summary{}, err
	}

	store := knowledge.LoadFile(cfg.KnowledgePath)
	var kb knowledge.Base = store
	if cfg.Workers > 1 {
		kb = knowledge.NewSharedFrom(store)
	}
	summary := Summary{Episodes: cfg.Episodes, InitialStates: kb.Len()}
	log.Info().Int("states", summary.InitialStates).Msgf("starting training cycle of %d episodes against %s", cfg.Episodes, cfg.Opponent)

	results := make([]episodeResult, cfg.Episodes)
	task := make(chan int, cfg.Episodes)
	for i := 0; i < cfg.Episodes; i++ {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				result, err := runEpisode(cfg, kb, i)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				results[i] = result
				log.Info().Msgf("completed episode %d of %d with winner: %v", i+1, cfg.Episodes, result.winner)
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return summary, firstErr
	}

	for _, r := range results {
		switch r.winner {
		case game.None:
			summary.Draws++
		case r.learnerSeat:
			summary.LearnerWins++
		default:
			summary.OpponentWins++
		}
	}
	summary.FinalStates = kb.Len()
	log.Info().
		Int("learner_wins", summary.LearnerWins).
		Int("opponent_wins", summary.OpponentWins).
		Int("draws", summary.Draws).
		Int("states", summary.FinalStates).
		Msg("completed training cycle")

	pruned := kb.Snapshot().Prune(cfg.MinVisits, cfg.MaxStates)
	if err := knowledge.SaveFile(cfg.KnowledgePath, pruned); err != nil {
		return summary, fmt.Errorf("failed to save knowledge: %w", err)
	}
	summary.SavedStates = pruned.Len()

	if cfg.RecordsDir != "" {
		dir, err := writeRecords(cfg, results)
		if err != nil {
			return summary, err
		}
		summary.RecordsDir = dir
	}
	return summary, nil
}

func validate(cfg TrainConfig) error {
	switch {
	case cfg.Episodes <= 0:
		return fmt.Errorf("episodes must be positive, got %d", cfg.Episodes)
	case cfg.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	case cfg.TimeBudget < 0:
		return fmt.Errorf("%w: %v", agent.ErrNegativeBudget, cfg.TimeBudget)
	case cfg.KnowledgePath == "":
		return fmt.Errorf("training needs a knowledge path")
	case cfg.Opponent != OpponentPlain && cfg.Opponent != OpponentRandom:
		return fmt.Errorf("unknown opponent %q", cfg.Opponent)
	}
	return nil
}

func runEpisode(cfg TrainConfig, kb knowledge.Base, i int) (episodeResult, error) {
	learnerCfg := cfg.Learner
	learnerCfg.Persistence = true
	learnerCfg.KnowledgePath = cfg.KnowledgePath
	learnerCfg.Seed = seedFor(cfg.Seed, 2*i)
	learner, err := agent.NewMCTSPolicy(learnerCfg, agent.WithKnowledgeBase(kb))
	if err != nil {
		return episodeResult{}, err
	}
	opponent, err := newOpponent(cfg.Opponent, seedFor(cfg.Seed, 2*i+1))
	if err != nil {
		return episodeResult{}, err
	}
	for _, p := range []agent.Policy{learner, opponent} {
		if err := p.Mount(cfg.TimeBudget); err != nil {
			return episodeResult{}, err
		}
	}

	// The learner opens every other game
	result := episodeResult{id: i + 1, learnerSeat: game.First}
	first, second := agent.Policy(learner), opponent
	if i%2 == 1 {
		result.learnerSeat = game.Second
		first, second = second, first
	}

	result.winner, result.gameMetric, result.moveMetrics = engine.LocalEngine(first, second).Run()
	return result, nil
}

func newOpponent(kind string, seed uint64) (agent.Policy, error) {
	if kind == OpponentRandom {
		return agent.NewRandomPolicy(seed), nil
	}
	cfg := agent.PlainConfig()
	cfg.Seed = seed
	return agent.NewMCTSPolicy(cfg)
}

// seedFor derives a distinct non-zero seed per policy; a zero base keeps
// clock seeding.
func seedFor(base uint64, n int) uint64 {
	if base == 0 {
		return 0
	}
	return base + uint64(n)
}

func writeRecords(cfg TrainConfig, results []episodeResult) (string, error) {
	writer, err := metrics.NewWriter(cfg.RecordsDir, "training")
	if err != nil {
		return "", fmt.Errorf("failed to create training writer: %w", err)
	}

	opponent := agent.PlainConfig()
	configs := []metrics.AgentConfig{
		agentConfig(learnerID, "learner", cfg.Learner, cfg.TimeBudget, true),
		agentConfig(opponentID, cfg.Opponent, opponent, cfg.TimeBudget, false),
	}
	if cfg.Opponent == OpponentRandom {
		configs[1] = metrics.AgentConfig{ID: opponentID, Name: OpponentRandom}
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		record := metrics.GameRecord{ID: r.id, Agent1: learnerID, Agent2: opponentID, GameMetric: r.gameMetric}
		if r.learnerSeat == game.Second {
			record.Agent1, record.Agent2 = opponentID, learnerID
		}
		gameRecords = append(gameRecords, record)
		for _, mm := range r.moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: r.id, MoveMetric: mm})
		}
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored training records")
	return writer.Dir(), nil
}

func agentConfig(id int, name string, cfg agent.Config, budget time.Duration, withKnowledge bool) metrics.AgentConfig {
	duration := budget
	if cfg.TimeCeiling > 0 && duration > cfg.TimeCeiling {
		duration = cfg.TimeCeiling
	}
	return metrics.AgentConfig{
		ID:          id,
		Name:        name,
		Duration:    duration,
		Cutoff:      cfg.RolloutCap,
		Exploration: cfg.Exploration,
		Knowledge:   withKnowledge,
		Heuristics:  cfg.Heuristics,
	}
}
