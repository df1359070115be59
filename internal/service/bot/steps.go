package bot

import (
	"github.com/iamasit07/connect-four/internal/domain"
)

// Step proposes a move for player on b, or domain.NoMove when it has
// nothing to offer. Steps look at copies only and never change b.
type Step func(b *domain.Board, player domain.PlayerID) domain.Move

// FindWinningMove returns the lowest column in which player wins on the
// spot, or NoMove.
func FindWinningMove(b *domain.Board, player domain.PlayerID) domain.Move {
	for _, col := range b.OpenColumns() {
		// a fresh copy per column so earlier candidates do not linger
		test := b.Clone()
		row, err := test.Drop(col, player)
		if err != nil {
			continue
		}
		if domain.HasPlayerWon(test, row, col, player) {
			return domain.Move{Row: row, Column: col}
		}
	}
	return domain.NoMove
}

// BlockWinningMove finds the cell the opponent would win with, so player can
// take it first.
func BlockWinningMove(b *domain.Board, player domain.PlayerID) domain.Move {
	return FindWinningMove(b, player.Other())
}

// leavesOpponentWin reports whether dropping into col hands the opponent a
// win on the next move.
func leavesOpponentWin(b *domain.Board, col int, player domain.PlayerID) (domain.Move, bool) {
	test := b.Clone()
	row, err := test.Drop(col, player)
	if err != nil {
		return domain.NoMove, true
	}
	move := domain.Move{Row: row, Column: col}
	return move, FindWinningMove(test, player.Other()).Valid()
}
