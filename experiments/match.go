package experiments

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/game"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type MatchResult struct {
	Games int
	AWins int
	BWins int
	Draws int
}

// Match plays games between two policy configurations with the same
// per-move budget. A opens the odd games and B the even ones.
func Match(a, b agent.Config, games int, budget time.Duration, options ...engine.Option) (MatchResult, error) {
	if games <= 0 {
		return MatchResult{}, fmt.Errorf("games must be positive, got %d", games)
	}

	result := MatchResult{Games: games}
	log.Info().Msgf("starting match of %d games", games)
	for i := 0; i < games; i++ {
		pa, err := mounted(gameConfig(a, 2*i), budget)
		if err != nil {
			return result, err
		}
		pb, err := mounted(gameConfig(b, 2*i+1), budget)
		if err != nil {
			return result, err
		}

		aSeat := game.First
		first, second := pa, pb
		if i%2 == 1 {
			aSeat = game.Second
			first, second = pb, pa
		}

		winner, gameMetric, _ := engine.LocalEngine(first, second, options...).Run()
		switch winner {
		case game.None:
			result.Draws++
		case aSeat:
			result.AWins++
		default:
			result.BWins++
		}
		log.Info().Msgf("completed game %d of %d with winner: %v after %d moves", i+1, games, winner, gameMetric.TotalMoves)
	}
	log.Info().Msgf("completed match: a=%d b=%d draws=%d", result.AWins, result.BWins, result.Draws)
	return result, nil
}

// gameConfig gives the n-th policy of a match its own seed.
func gameConfig(cfg agent.Config, n int) agent.Config {
	cfg.Seed = seedFor(cfg.Seed, n)
	return cfg
}

func mounted(cfg agent.Config, budget time.Duration) (*agent.MCTSPolicy, error) {
	p, err := agent.NewMCTSPolicy(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Mount(budget); err != nil {
		return nil, err
	}
	return p, nil
}
