package engine

import (
	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// WithRender draws the final board onto w.
func WithRender(w io.Writer) Option {
	return func(e *Local) {
		if w != nil {
			e.render = termenv.NewOutput(w)
		}
	}
}

// Local plays two policies against each other in process. Policies must
// already be mounted.
type Local struct {
	agents  [2]agent.Policy
	referee *gamemaster.Referee
	render  *termenv.Output
}

// LocalEngine seats first as game.First and second as game.Second.
func LocalEngine(first, second agent.Policy, options ...Option) *Local {
	if first == nil || second == nil {
		panic("need two agents")
	}
	e := &Local{
		agents:  [2]agent.Policy{first, second},
		referee: gamemaster.NewReferee(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func seat(p game.Player) int {
	if p == game.First {
		return 0
	}
	return 1
}

// Run executes the entire game loop until a winner is found or the board is full.
func (e *Local) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	board, getUpdate := e.referee.Init()
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(game.First),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for step := 1; !e.referee.Over() && step <= MaxMoves; step++ {
		player := e.referee.ToMove()
		policy := e.agents[seat(player)]

		column := policy.Act(board)
		mm := metrics.MoveMetric{}
		if reporter, ok := policy.(agent.Reporter); ok {
			mm = reporter.LastMove()
		}

		if err := e.referee.Play(column); err != nil {
			// Fall back to the first legal move so a faulty policy cannot stall the game
			log.Warn().Err(err).Int("step", step).Msgf("player %v returned an invalid move", player)
			legal := e.referee.LegalMoves()
			if len(legal) == 0 {
				break
			}
			column = legal[0]
			if err := e.referee.Play(column); err != nil {
				panic(err)
			}
			mm.Heuristic = "fallback"
		}

		u, _ := getUpdate()
		board = u.Board
		mm.Step, mm.Player, mm.Column = step, int(player), column
		moveMetrics = append(moveMetrics, mm)
	}

	winner := e.referee.Winner()
	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.referee.Moves()

	log.Debug().Int("moves", gameMetric.TotalMoves).Msgf("game over, winner %v", winner)
	if e.render != nil {
		board.Render(e.render)
	}

	return winner, gameMetric, moveMetrics
}
