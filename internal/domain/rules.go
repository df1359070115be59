package domain

// axis is a line direction expressed as row and column strides.
type axis struct {
	rowStride int
	colStride int
}

// horizontal, vertical, diagonal down-right, diagonal up-right. The other
// two diagonals are the same lines walked the other way.
var axes = [...]axis{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// MaxRun walks eight cells along one axis, starting three steps behind
// (row, col), and returns the longest run of player's pieces it sees.
// Cells off the board break a run like any other non-matching cell.
func MaxRun(b *Board, row, col, rowStride, colStride int, player PlayerID) int {
	best, count := 0, 0
	r := row - 3*rowStride
	c := col - 3*colStride

	for i := 0; i < 8; i++ {
		if idx := b.Index(r, c); idx != -1 && b.cells[idx] == player {
			count++
			if count > best {
				best = count
			}
		} else {
			count = 0
		}
		r += rowStride
		c += colStride
	}
	return best
}

// HasPlayerWon reports whether the piece at (row, column) completes four in
// a row for player. Only lines through that cell are inspected, which is
// enough because a new line must contain the last piece placed.
func HasPlayerWon(b *Board, row, column int, player PlayerID) bool {
	for _, a := range axes {
		if MaxRun(b, row, column, a.rowStride, a.colStride, player) >= ToWin {
			return true
		}
	}
	return false
}
