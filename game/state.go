package game

import (
	"errors"
	"fmt"

	"github.com/OneOfOne/xxhash"
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
)

// Play drops a piece for p into column and returns the new board. The
// receiver is never modified.
func (b Board) Play(column int, p Player) (Board, error) {
	if column < 0 || column >= Cols {
		return b, fmt.Errorf("%w: %d", ErrColumnOutOfRange, column)
	}
	for r := Rows - 1; r >= 0; r-- {
		if b[r][column] == None {
			b[r][column] = p
			return b, nil
		}
	}
	return b, fmt.Errorf("%w: %d", ErrColumnFull, column)
}

// ApplyMove is Play without the error: illegal moves leave the board as is.
func ApplyMove(b Board, column int, p Player) Board {
	next, err := b.Play(column, p)
	if err != nil {
		return b
	}
	return next
}

// ValidActions lists the non-full columns in ascending order.
func (b Board) ValidActions() []int {
	actions := make([]int, 0, Cols)
	for c := 0; c < Cols; c++ {
		if b[0][c] == None {
			actions = append(actions, c)
		}
	}
	return actions
}

func (b Board) IsValid(column int) bool {
	return column >= 0 && column < Cols && b[0][column] == None
}

func (b Board) PieceCount() int {
	count := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b[r][c] != None {
				count++
			}
		}
	}
	return count
}

// ToMove derives the player to move from piece parity: First always opens.
func (b Board) ToMove() Player {
	if b.PieceCount()%2 == 0 {
		return First
	}
	return Second
}

func (b Board) Key(toMove Player) Key {
	var k Key
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			k[r*Cols+c] = byte(b[r][c])
		}
	}
	k[Cells] = byte(toMove)
	return k
}

// Board decodes a key back into its position and player to move.
func (k Key) Board() (Board, Player) {
	var b Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			b[r][c] = Player(int8(k[r*Cols+c]))
		}
	}
	return b, Player(int8(k[Cells]))
}

func (k Key) Hash() uint64 {
	return xxhash.Checksum64(k[:])
}

// KeyFromBytes copies a persisted key. It fails on a length mismatch.
func KeyFromBytes(raw []byte) (Key, error) {
	var k Key
	if len(raw) != len(k) {
		return k, fmt.Errorf("invalid key length %d, want %d", len(raw), len(k))
	}
	copy(k[:], raw)
	return k, nil
}
