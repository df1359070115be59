package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
)

const indent = "      "

// Renderer prints the board and game announcements as plain text.
type Renderer struct {
	w       io.Writer
	symbols [3]string
}

func NewRenderer(w io.Writer, symbols [3]string) *Renderer {
	return &Renderer{w: w, symbols: symbols}
}

func (r *Renderer) symbol(p domain.PlayerID) string {
	if p < domain.Empty || p > domain.Player2 {
		return "?"
	}
	return r.symbols[p]
}

// Board draws the legend, the 1-indexed column header and the grid.
func (r *Renderer) Board(b *domain.Board) {
	var sb strings.Builder

	for p := domain.Player1; p <= domain.Player2; p++ {
		fmt.Fprintf(&sb, "Player %d is %s.  ", p, r.symbol(p))
	}
	sb.WriteString("\n\n")

	sb.WriteString(indent)
	for col := 0; col < b.Width(); col++ {
		fmt.Fprintf(&sb, "  %d ", col+1)
	}
	sb.WriteString("\n")

	sb.WriteString(indent + strings.Repeat("____", b.Width()) + "_\n")
	for _, row := range b.Grid() {
		sb.WriteString(indent)
		for _, cell := range row {
			sb.WriteString("| " + r.symbol(cell) + " ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(indent + strings.Repeat("----", b.Width()) + "-\n\n")

	io.WriteString(r.w, sb.String())
}

func (r *Renderer) Welcome() {
	fmt.Fprint(r.w, "Welcome to Connect Four!  Let's get started!\n\n")
}

func (r *Renderer) ComputerMoved(round int, player domain.PlayerID, column int) {
	fmt.Fprintf(r.w, "\nRound %d: Player %d dropped his piece in column %d.\n\n", round, player, column+1)
}

func (r *Renderer) ColumnFull(column int) {
	fmt.Fprintf(r.w, "\t*** Column %d is full.  Please select a different column. ***\n\n", column+1)
}

func (r *Renderer) InvalidColumn() {
	fmt.Fprint(r.w, invalidColumnMsg)
}

func (r *Renderer) Finished(winner domain.PlayerID) {
	if winner == domain.Empty {
		fmt.Fprint(r.w, "The board is full and no one wins.  Thank you for playing!\n")
		return
	}
	fmt.Fprintf(r.w, "Player %d wins.  Congratulations!!!\n", winner)
}

// Watching tells the console owner how spectators can follow the game.
func (r *Renderer) Watching(url string) {
	fmt.Fprintf(r.w, "Spectators can follow this game at %s\n\n", url)
}

func (r *Renderer) Goodbye() {
	fmt.Fprint(r.w, "\nThank you for playing!!!\n")
}
