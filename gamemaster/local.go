package gamemaster

import (
	"connect4/game"
	"errors"
	"fmt"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

// Update is one applied move and the board it produced.
type Update struct {
	Column int
	Player game.Player
	Board  game.Board
}

// UpdateGetter returns the next update not yet seen by its caller, if any.
type UpdateGetter func() (Update, bool)

// Referee holds the authoritative board of one game and only accepts
// legal moves from the side to move.
type Referee struct {
	board    game.Board
	history  []Update
	gameOver bool
	winner   game.Player
}

func NewReferee() *Referee {
	return &Referee{}
}

// Init starts a new game on an empty board.
func (r *Referee) Init() (game.Board, UpdateGetter) {
	r.board = game.Board{}
	r.history = nil
	r.gameOver = false
	r.winner = game.None

	seen := 0
	return r.board, func() (Update, bool) {
		if seen >= len(r.history) {
			return Update{}, false
		}
		u := r.history[seen]
		seen++
		return u, true
	}
}

// Play drops a piece for the side to move. Illegal moves leave the game untouched.
func (r *Referee) Play(column int) error {
	if r.gameOver {
		return ErrGameOver
	}

	player := r.board.ToMove()
	next, err := r.board.Play(column, player)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	r.board = next
	r.history = append(r.history, Update{Column: column, Player: player, Board: next})

	if next.CheckWin(player) {
		r.gameOver = true
		r.winner = player
	} else if next.IsFull() {
		r.gameOver = true
	}
	return nil
}

func (r *Referee) Board() game.Board {
	return r.board
}

func (r *Referee) ToMove() game.Player {
	return r.board.ToMove()
}

func (r *Referee) LegalMoves() []int {
	if r.gameOver {
		return nil
	}
	return r.board.ValidActions()
}

func (r *Referee) Over() bool {
	return r.gameOver
}

// Winner is None while the game runs and after a draw.
func (r *Referee) Winner() game.Player {
	return r.winner
}

func (r *Referee) Moves() int {
	return len(r.history)
}

func (r *Referee) History() []Update {
	return append([]Update(nil), r.history...)
}
