package agent

import (
	"connect4/searcher"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
		require.NoError(t, PlainConfig().Validate())
		require.Equal(t, 20, DefaultConfig().RolloutCap)
	})

	t.Run("load overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.yaml")
		yaml := "exploration: 2.0\ntime_ceiling: 250ms\nevaluation: threats\npersistence: false\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 2.0, cfg.Exploration)
		require.Equal(t, 250*time.Millisecond, cfg.TimeCeiling)
		require.Equal(t, "threats", cfg.Evaluation)
		require.False(t, cfg.Persistence)
		require.Equal(t, 20, cfg.RolloutCap, "Unset fields keep their defaults")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agent.yaml")
		require.NoError(t, os.WriteFile(path, []byte("evaluation: oracle\n"), 0o644))
		_, err := LoadConfig(path)
		require.Error(t, err)

		cfg := DefaultConfig()
		cfg.BatchSize = 0
		require.Error(t, cfg.Validate())

		_, err = NewMCTSPolicy(cfg)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("empty policy", func(t *testing.T) {
		_, ok := sample(nil, 1, rng)
		require.False(t, ok)
	})

	t.Run("only visited moves are drawn", func(t *testing.T) {
		policy := []searcher.Visit{{Column: 0, Visits: 0}, {Column: 4, Visits: 10}, {Column: 6, Visits: 0}}
		for i := 0; i < 20; i++ {
			column, ok := sample(policy, 1, rng)
			require.True(t, ok)
			require.Equal(t, 4, column)
		}
	})

	t.Run("low temperature approaches the argmax", func(t *testing.T) {
		policy := []searcher.Visit{{Column: 1, Visits: 10}, {Column: 2, Visits: 30}}
		for i := 0; i < 20; i++ {
			column, _ := sample(policy, 0.05, rng)
			require.Equal(t, 2, column)
		}
	})
}
