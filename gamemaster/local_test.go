package gamemaster

import (
	"connect4/game"
	"errors"
	"testing"
)

func TestRefereeInit(t *testing.T) {
	referee := NewReferee()
	board, getUpdate := referee.Init()

	if board != (game.Board{}) {
		t.Errorf("expected an empty board, got\n%s", board)
	}
	if referee.ToMove() != game.First {
		t.Errorf("expected first player to move, got %v", referee.ToMove())
	}
	if _, ok := getUpdate(); ok {
		t.Error("expected no update before any move")
	}
}

func TestRefereePlay_ValidMove(t *testing.T) {
	referee := NewReferee()
	_, getUpdate := referee.Init()

	if err := referee.Play(3); err != nil {
		t.Fatalf("expected no error for a valid move, got %v", err)
	}

	u, ok := getUpdate()
	if !ok {
		t.Fatal("expected an update after playing a move, got none")
	}
	if u.Column != 3 || u.Player != game.First {
		t.Errorf("unexpected update %+v", u)
	}
	if u.Board[game.Rows-1][3] != game.First {
		t.Errorf("expected the piece at the bottom of column 3, got\n%s", u.Board)
	}
	if referee.ToMove() != game.Second {
		t.Errorf("expected second player to move next, got %v", referee.ToMove())
	}
	if _, ok := getUpdate(); ok {
		t.Error("expected each update to be returned once")
	}
}

func TestRefereePlay_IllegalMove(t *testing.T) {
	referee := NewReferee()
	referee.Init()

	for i := 0; i < game.Rows; i++ {
		if err := referee.Play(0); err != nil {
			t.Fatalf("unexpected error filling column 0: %v", err)
		}
	}
	before := referee.Board()

	for _, column := range []int{0, -1, game.Cols} {
		err := referee.Play(column)
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("expected illegal move error for column %d, got %v", column, err)
		}
	}
	if referee.Board() != before {
		t.Error("illegal moves should not change the board")
	}
	if referee.Moves() != game.Rows {
		t.Errorf("expected %d moves in history, got %d", game.Rows, referee.Moves())
	}
}

func TestRefereePlay_GameOver(t *testing.T) {
	referee := NewReferee()
	referee.Init()

	// First stacks column 0 while Second answers in column 1
	for _, column := range []int{0, 1, 0, 1, 0, 1, 0} {
		if err := referee.Play(column); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if !referee.Over() {
		t.Fatal("expected the game to be over after a vertical line")
	}
	if referee.Winner() != game.First {
		t.Errorf("expected first player to win, got %v", referee.Winner())
	}
	if len(referee.LegalMoves()) != 0 {
		t.Error("expected no legal moves after game over")
	}

	err := referee.Play(2)
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("expected %q error, got %v", ErrGameOver, err)
	}
	if len(referee.History()) != 7 {
		t.Errorf("expected 7 moves in history, got %d", len(referee.History()))
	}
}

func TestReferee_Reinit(t *testing.T) {
	referee := NewReferee()
	referee.Init()
	referee.Play(4)

	board, _ := referee.Init()
	if board != (game.Board{}) || referee.Moves() != 0 || referee.Over() {
		t.Error("expected Init to reset the game")
	}
}
