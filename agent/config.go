package agent

import (
	"connect4/game"
	"connect4/searcher"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of MCTSPolicy.
type Config struct {
	Exploration      float64       `yaml:"exploration"`
	RolloutCap       int           `yaml:"rollout_cap"` // 0 plays rollouts to the end
	BatchSize        int           `yaml:"batch_size"`
	Evaluation       string        `yaml:"evaluation"` // "draw" or "threats"
	Persistence      bool          `yaml:"persistence"`
	KnowledgePath    string        `yaml:"knowledge_path"`
	Heuristics       bool          `yaml:"heuristics"`
	CenterPreference bool          `yaml:"center_preference"`
	TimeCeiling      time.Duration `yaml:"time_ceiling"`
	LateGamePieces   int           `yaml:"late_game_pieces"`
	LateGameFactor   float64       `yaml:"late_game_factor"`
	Temperature      float64       `yaml:"temperature"`
	Seed             uint64        `yaml:"seed"` // 0 seeds from the clock
}

func DefaultConfig() Config {
	return Config{
		Exploration:      searcher.DefaultExploration,
		RolloutCap:       20,
		BatchSize:        searcher.DefaultBatchSize,
		Evaluation:       "draw",
		Persistence:      true,
		KnowledgePath:    "knowledge.kb",
		Heuristics:       true,
		CenterPreference: true,
		TimeCeiling:      time.Second,
		LateGamePieces:   30,
		LateGameFactor:   0.5,
	}
}

// PlainConfig is a memoryless searcher with a fixed short budget and no
// shortcuts, used as a sparring opponent.
func PlainConfig() Config {
	cfg := DefaultConfig()
	cfg.RolloutCap = 0
	cfg.Persistence = false
	cfg.KnowledgePath = ""
	cfg.Heuristics = false
	cfg.CenterPreference = false
	cfg.TimeCeiling = 300 * time.Millisecond
	cfg.LateGamePieces = 0
	return cfg
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Exploration < 0:
		return fmt.Errorf("exploration must not be negative, got %v", c.Exploration)
	case c.RolloutCap < 0:
		return fmt.Errorf("rollout cap must not be negative, got %d", c.RolloutCap)
	case c.BatchSize <= 0:
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	case c.TimeCeiling < 0:
		return fmt.Errorf("time ceiling must not be negative, got %v", c.TimeCeiling)
	case c.LateGameFactor <= 0 || c.LateGameFactor > 1:
		return fmt.Errorf("late game factor must be in (0, 1], got %v", c.LateGameFactor)
	case c.Temperature < 0:
		return fmt.Errorf("temperature must not be negative, got %v", c.Temperature)
	case c.Persistence && c.KnowledgePath == "":
		return fmt.Errorf("persistence needs a knowledge path")
	}
	if _, err := c.evaluate(); err != nil {
		return err
	}
	return nil
}

func (c Config) evaluate() (game.Evaluate, error) {
	switch c.Evaluation {
	case "", "draw":
		return game.EvaluateDraw, nil
	case "threats":
		return game.EvaluateThreats, nil
	default:
		return nil, fmt.Errorf("unknown evaluation %q", c.Evaluation)
	}
}
