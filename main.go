package main

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/experiments"
	"connect4/meta"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "train", "train or match")
	configPath := flag.String("config", "", "YAML file with learner settings")
	episodes := flag.Int("episodes", meta.EPISODES, "Number of games per training cycle or match")
	budget := flag.Duration("budget", meta.TIME_BUDGET, "Search time per move")
	knowledgePath := flag.String("knowledge", meta.KNOWLEDGE_PATH, "Knowledge file (.parquet for columnar, anything else for gob+zstd)")
	minVisits := flag.Int("min-visits", meta.MIN_VISITS, "Drop states with fewer visits when saving")
	maxStates := flag.Int("max-states", meta.MAX_STATES, "Keep at most this many states when saving")
	workers := flag.Int("workers", meta.WORKERS, "Games played concurrently")
	opponent := flag.String("opponent", experiments.OpponentPlain, "Training opponent: plain or random")
	records := flag.String("records", "", "Directory for CSV game and move records")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	render := flag.Bool("render", false, "Print the final board of every match game")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	learner := agent.DefaultConfig()
	if *configPath != "" {
		cfg, err := agent.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load learner config")
		}
		learner = cfg
	}
	learner.KnowledgePath = *knowledgePath
	learner.Seed = *seed

	switch *mode {
	case "train":
		cfg := experiments.TrainConfig{
			Episodes:      *episodes,
			TimeBudget:    *budget,
			KnowledgePath: *knowledgePath,
			MinVisits:     *minVisits,
			MaxStates:     *maxStates,
			Workers:       *workers,
			Opponent:      *opponent,
			Learner:       learner,
			RecordsDir:    *records,
			Seed:          *seed,
		}
		summary, err := experiments.Train(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("training failed")
		}
		log.Info().Msgf("learner won %d of %d games, knowledge %d -> %d states (%d saved)",
			summary.LearnerWins, summary.Episodes, summary.InitialStates, summary.FinalStates, summary.SavedStates)
	case "match":
		var options []engine.Option
		if *render {
			options = append(options, engine.WithRender(os.Stdout))
		}
		result, err := experiments.Match(learner, agent.PlainConfig(), *episodes, *budget, options...)
		if err != nil {
			log.Fatal().Err(err).Msg("match failed")
		}
		log.Info().Msgf("learner %d, plain %d, draws %d", result.AWins, result.BWins, result.Draws)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}
