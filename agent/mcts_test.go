package agent

import (
	"connect4/game"
	"connect4/knowledge"
	"connect4/searcher"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newPolicy(t *testing.T, cfg Config) *MCTSPolicy {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	p, err := NewMCTSPolicy(cfg)
	require.NoError(t, err)
	return p
}

func memoryless() Config {
	cfg := DefaultConfig()
	cfg.Persistence = false
	cfg.KnowledgePath = ""
	return cfg
}

func TestActShortcuts(t *testing.T) {
	t.Run("takes an immediate win", func(t *testing.T) {
		b := game.MustParseBoard(`
			.......
			.......
			.......
			.......
			OO.....
			XXX...O`)
		p := newPolicy(t, memoryless())
		require.NoError(t, p.Mount(time.Second))

		require.Equal(t, 3, p.Act(b))
		require.Equal(t, HeuristicWin, p.LastMove().Heuristic)
	})

	t.Run("blocks an immediate loss", func(t *testing.T) {
		b := game.MustParseBoard(`
			.......
			.......
			.......
			.......
			X......
			OOO..XX`)
		p := newPolicy(t, memoryless())
		require.NoError(t, p.Mount(time.Second))

		require.Equal(t, 3, p.Act(b))
		require.Equal(t, HeuristicBlock, p.LastMove().Heuristic)
	})

	t.Run("winning beats blocking", func(t *testing.T) {
		b := game.MustParseBoard(`
			.......
			.......
			.......
			X......
			X...XXO
			X...OOO`)
		require.Equal(t, game.Second, b.ToMove())
		p := newPolicy(t, memoryless())
		require.NoError(t, p.Mount(time.Second))

		require.Equal(t, 3, p.Act(b), "Second should complete the bottom row instead of blocking column 0")
		require.Equal(t, HeuristicWin, p.LastMove().Heuristic)
	})

	t.Run("opens in the center", func(t *testing.T) {
		p := newPolicy(t, memoryless())
		require.NoError(t, p.Mount(time.Second))

		require.Equal(t, game.Center, p.Act(game.Board{}))
		require.Equal(t, HeuristicCenter, p.LastMove().Heuristic)

		reply := game.ApplyMove(game.Board{}, 0, game.First)
		require.Equal(t, game.Center, p.Act(reply), "Second player also opens in the center")
		require.Equal(t, int(game.Second), p.LastMove().Player)
	})

	t.Run("full board", func(t *testing.T) {
		b := game.MustParseBoard(`
			XXOOXXO
			OOXXOOX
			XXOOXXO
			OOXXOOX
			XXOOXXO
			OOXXOOX`)
		p := newPolicy(t, memoryless())
		require.NoError(t, p.Mount(time.Second))
		require.Equal(t, searcher.NoMove, p.Act(b))
	})
}

func TestActSearch(t *testing.T) {
	t.Run("zero budget falls back to the first legal column", func(t *testing.T) {
		cfg := memoryless()
		cfg.Heuristics = false
		p := newPolicy(t, cfg)
		require.NoError(t, p.Mount(0))

		require.Equal(t, 0, p.Act(game.Board{}))
		require.Equal(t, 0, p.LastMove().Episodes)
	})

	t.Run("search without heuristics still blocks", func(t *testing.T) {
		cfg := memoryless()
		cfg.Heuristics = false
		cfg.RolloutCap = 0
		p := newPolicy(t, cfg)
		require.NoError(t, p.Mount(300*time.Millisecond))

		b := game.MustParseBoard(`
			.......
			.......
			.......
			.......
			X......
			OOO..XX`)
		require.Equal(t, 3, p.Act(b))
		require.Greater(t, p.LastMove().Episodes, 0)
		require.Empty(t, p.LastMove().Heuristic)
	})

	t.Run("mover follows parity", func(t *testing.T) {
		cfg := memoryless()
		cfg.Heuristics = false
		p := newPolicy(t, cfg)
		require.NoError(t, p.Mount(10*time.Millisecond))

		column := p.Act(game.ApplyMove(game.Board{}, 2, game.First))
		require.True(t, game.ApplyMove(game.Board{}, 2, game.First).IsValid(column))
		require.Equal(t, int(game.Second), p.LastMove().Player)
	})

	t.Run("temperature sampling returns a legal column", func(t *testing.T) {
		cfg := memoryless()
		cfg.Heuristics = false
		cfg.Temperature = 1
		p := newPolicy(t, cfg)
		require.NoError(t, p.Mount(10*time.Millisecond))

		require.True(t, game.Board{}.IsValid(p.Act(game.Board{})))
	})
}

func TestMount(t *testing.T) {
	t.Run("negative budget is rejected", func(t *testing.T) {
		p := newPolicy(t, memoryless())
		err := p.Mount(-time.Second)
		require.True(t, errors.Is(err, ErrNegativeBudget))

		err = NewRandomPolicy(1).Mount(-time.Second)
		require.True(t, errors.Is(err, ErrNegativeBudget))
	})

	t.Run("corrupt knowledge file mounts an empty store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "knowledge.kb")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

		cfg := DefaultConfig()
		cfg.KnowledgePath = path
		p := newPolicy(t, cfg)
		require.NoError(t, p.Mount(time.Second))
		require.NotNil(t, p.Knowledge())
		require.Equal(t, 0, p.Knowledge().Len())
	})

	t.Run("injected knowledge is kept", func(t *testing.T) {
		shared := knowledge.NewShared()
		cfg := DefaultConfig()
		cfg.Seed = 3
		p, err := NewMCTSPolicy(cfg, WithKnowledgeBase(shared))
		require.NoError(t, err)
		require.NoError(t, p.Mount(time.Second))
		require.Same(t, shared, p.Knowledge())
	})
}

func TestKnowledgeLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb", "knowledge.kb")
	cfg := DefaultConfig()
	cfg.KnowledgePath = path
	cfg.Heuristics = false
	p := newPolicy(t, cfg)
	require.NoError(t, p.Mount(50*time.Millisecond))
	require.Equal(t, 0, p.Knowledge().Len(), "Missing file should mount empty")

	p.Act(game.Board{})
	require.Greater(t, p.Knowledge().Len(), 0, "Search should merge into the store")

	require.NoError(t, p.SaveKnowledge("", 1, 100))
	saved := knowledge.LoadFile(path)
	require.Greater(t, saved.Len(), 0)
	require.LessOrEqual(t, saved.Len(), 100)

	// A second policy picks the store up again
	again := newPolicy(t, cfg)
	require.NoError(t, again.Mount(time.Second))
	require.Equal(t, saved.Len(), again.Knowledge().Len())

	memory := newPolicy(t, memoryless())
	require.Error(t, memory.SaveKnowledge(path, 1, 100), "Nothing to save without a store")
}

func TestBudgetFor(t *testing.T) {
	cfg := memoryless()
	cfg.TimeCeiling = time.Second
	cfg.LateGamePieces = 30
	cfg.LateGameFactor = 0.5
	p := newPolicy(t, cfg)
	require.NoError(t, p.Mount(5*time.Second))

	require.Equal(t, time.Second, p.budgetFor(0), "Budget should be capped at the ceiling")
	require.Equal(t, 500*time.Millisecond, p.budgetFor(30), "Late game budget should shrink")

	require.NoError(t, p.Mount(200*time.Millisecond))
	require.Equal(t, 200*time.Millisecond, p.budgetFor(10))
}

func TestRandomPolicy(t *testing.T) {
	p := NewRandomPolicy(5)
	require.NoError(t, p.Mount(time.Second))

	b := game.Board{}
	for i := 0; i < game.Cells && !b.IsTerminal(); i++ {
		column := p.Act(b)
		require.True(t, b.IsValid(column), "Random policy must play legal columns")
		b = game.ApplyMove(b, column, b.ToMove())
	}
	require.True(t, b.IsTerminal())
}
