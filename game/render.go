package game

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// String renders the board as plain text with column indices underneath.
func (b Board) String() string {
	var sb strings.Builder
	out := termenv.NewOutput(&sb, termenv.WithProfile(termenv.Ascii))
	b.Render(out)
	return sb.String()
}

// Render writes the board to out, coloring pieces when the output supports it.
func (b Board) Render(out *termenv.Output) {
	for r := 0; r < Rows; r++ {
		cells := make([]string, Cols)
		for c := 0; c < Cols; c++ {
			cells[c] = styled(out, b[r][c])
		}
		fmt.Fprintln(out, strings.Join(cells, " "))
	}
	footer := make([]string, Cols)
	for c := range footer {
		footer[c] = fmt.Sprint(c)
	}
	fmt.Fprintln(out, strings.Join(footer, " "))
}

func styled(out *termenv.Output, p Player) string {
	s := out.String(p.String())
	switch p {
	case First:
		s = s.Foreground(out.Color("1")).Bold()
	case Second:
		s = s.Foreground(out.Color("3")).Bold()
	default:
		s = s.Faint()
	}
	return s.String()
}

// ParseBoard reads a board drawn top row first with X, O and '.' cells.
// Spaces are ignored, as is a trailing line of column indices.
func ParseBoard(s string) (Board, error) {
	var b Board
	r := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" || line == "0123456" {
			continue
		}
		if r >= Rows {
			return b, fmt.Errorf("too many rows, want %d", Rows)
		}
		if len(line) != Cols {
			return b, fmt.Errorf("row %d has %d cells, want %d", r, len(line), Cols)
		}
		for c, ch := range line {
			switch ch {
			case 'X', 'x':
				b[r][c] = First
			case 'O', 'o':
				b[r][c] = Second
			case '.':
				b[r][c] = None
			default:
				return b, fmt.Errorf("unexpected cell %q at row %d column %d", ch, r, c)
			}
		}
		r++
	}
	if r != Rows {
		return b, fmt.Errorf("got %d rows, want %d", r, Rows)
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be well formed.
func MustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}
