package experiments

import (
	"connect4/agent"
	"connect4/knowledge"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tinyTraining(t *testing.T) TrainConfig {
	dir := t.TempDir()
	cfg := DefaultTrainConfig()
	cfg.Episodes = 4
	cfg.TimeBudget = 2 * time.Millisecond
	cfg.KnowledgePath = filepath.Join(dir, "knowledge.kb")
	cfg.MinVisits = 1
	cfg.Opponent = OpponentRandom
	cfg.RecordsDir = filepath.Join(dir, "records")
	cfg.Seed = 11
	return cfg
}

func TestTrain(t *testing.T) {
	t.Run("single worker cycle saves knowledge", func(t *testing.T) {
		cfg := tinyTraining(t)
		summary, err := Train(cfg)
		require.NoError(t, err)

		require.Equal(t, 4, summary.Episodes)
		require.Equal(t, 4, summary.LearnerWins+summary.OpponentWins+summary.Draws)
		require.Equal(t, 0, summary.InitialStates)
		require.Greater(t, summary.FinalStates, 0)
		require.LessOrEqual(t, summary.SavedStates, summary.FinalStates)

		saved := knowledge.LoadFile(cfg.KnowledgePath)
		require.Equal(t, summary.SavedStates, saved.Len())

		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			_, err := os.Stat(filepath.Join(summary.RecordsDir, name))
			require.NoError(t, err, "%s should be written", name)
		}
	})

	t.Run("parallel workers share one store", func(t *testing.T) {
		cfg := tinyTraining(t)
		cfg.Workers = 2
		cfg.RecordsDir = ""
		summary, err := Train(cfg)
		require.NoError(t, err)
		require.Equal(t, 4, summary.LearnerWins+summary.OpponentWins+summary.Draws)
		require.Empty(t, summary.RecordsDir)

		// A second cycle starts from the saved knowledge
		again, err := Train(cfg)
		require.NoError(t, err)
		require.Equal(t, summary.SavedStates, again.InitialStates)
	})

	t.Run("plain opponent", func(t *testing.T) {
		cfg := tinyTraining(t)
		cfg.Episodes = 2
		cfg.Opponent = OpponentPlain
		cfg.RecordsDir = ""
		_, err := Train(cfg)
		require.NoError(t, err)
	})

	t.Run("invalid configs", func(t *testing.T) {
		for name, mutate := range map[string]func(*TrainConfig){
			"no episodes":     func(c *TrainConfig) { c.Episodes = 0 },
			"no workers":      func(c *TrainConfig) { c.Workers = 0 },
			"negative budget": func(c *TrainConfig) { c.TimeBudget = -time.Second },
			"no path":         func(c *TrainConfig) { c.KnowledgePath = "" },
			"bad opponent":    func(c *TrainConfig) { c.Opponent = "oracle" },
		} {
			cfg := tinyTraining(t)
			mutate(&cfg)
			_, err := Train(cfg)
			require.Error(t, err, name)
		}
	})
}

func TestMatch(t *testing.T) {
	a := agent.PlainConfig()
	a.Seed = 1
	b := agent.PlainConfig()
	b.Seed = 2
	result, err := Match(a, b, 2, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 2, result.AWins+result.BWins+result.Draws)

	_, err = Match(a, b, 0, time.Millisecond)
	require.Error(t, err)
}

func TestGameConfig(t *testing.T) {
	t.Run("every game seeds its policies apart", func(t *testing.T) {
		cfg := agent.PlainConfig()
		cfg.Seed = 5
		seen := map[uint64]bool{}
		for i := 0; i < 4; i++ {
			for _, n := range []int{2 * i, 2*i + 1} {
				seed := gameConfig(cfg, n).Seed
				require.False(t, seen[seed], "Seed %d should not repeat", seed)
				seen[seed] = true
			}
		}
		require.Equal(t, uint64(5), cfg.Seed, "Base config should be untouched")
	})

	t.Run("zero seed keeps clock seeding", func(t *testing.T) {
		require.Zero(t, gameConfig(agent.PlainConfig(), 3).Seed)
	})
}
