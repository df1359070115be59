package domain

import "fmt"

// Board is a width x height grid stored row-major, row 0 on top. It owns
// the per-column fill counters so a drop never has to scan the column.
type Board struct {
	width  int
	height int
	cells  []PlayerID
	filled []int
	moves  int
}

func NewBoard(width, height int) (*Board, error) {
	if width < MinDimension || height < MinDimension {
		return nil, ErrInvalidDimensions
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]PlayerID, width*height),
		filled: make([]int, width),
	}, nil
}

// NewStandardBoard returns the usual 7x6 board.
func NewStandardBoard() *Board {
	b, _ := NewBoard(Columns, Rows)
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// MoveCount is the number of pieces on the board.
func (b *Board) MoveCount() int { return b.moves }

// Index converts (row, col) into an index of the cell slice, or -1 when
// the coordinates fall outside the board.
func (b *Board) Index(row, col int) int {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return -1
	}
	return row*b.width + col
}

// Cell returns the occupant of (row, col); out of range reads as Empty.
func (b *Board) Cell(row, col int) PlayerID {
	i := b.Index(row, col)
	if i == -1 {
		return Empty
	}
	return b.cells[i]
}

func (b *Board) FillCount(col int) int {
	if col < 0 || col >= b.width {
		return 0
	}
	return b.filled[col]
}

func (b *Board) IsColumnFull(col int) bool {
	return b.filled[col] >= b.height
}

// LandingRow is the row a piece dropped into col would occupy, -1 if the
// column is full or does not exist.
func (b *Board) LandingRow(col int) int {
	if col < 0 || col >= b.width || b.IsColumnFull(col) {
		return -1
	}
	return b.height - b.filled[col] - 1
}

func (b *Board) IsFull() bool {
	for _, n := range b.filled {
		if n != b.height {
			return false
		}
	}
	return true
}

// OpenColumns lists the columns that still have room, in ascending order.
func (b *Board) OpenColumns() []int {
	open := make([]int, 0, b.width)
	for col, n := range b.filled {
		if n < b.height {
			open = append(open, col)
		}
	}
	return open
}

// Drop places player's piece in the lowest empty cell of column and returns
// the row it landed on. Nothing changes when an error is returned.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if column < 0 || column >= b.width {
		return -1, ErrInvalidColumn
	}
	if !player.IsPlayer() {
		return -1, ErrInvalidPlayer
	}
	if b.filled[column] >= b.height {
		return -1, ErrColumnFull
	}

	row := b.height - b.filled[column] - 1
	b.cells[row*b.width+column] = player
	b.filled[column]++
	b.moves++
	return row, nil
}

// this creates a deep copy of the board, counters included
func (b *Board) Clone() *Board {
	cells := make([]PlayerID, len(b.cells))
	copy(cells, b.cells)
	filled := make([]int, len(b.filled))
	copy(filled, b.filled)
	return &Board{
		width:  b.width,
		height: b.height,
		cells:  cells,
		filled: filled,
		moves:  b.moves,
	}
}

// Grid returns a copy of the cells as rows, top row first.
func (b *Board) Grid() [][]PlayerID {
	grid := make([][]PlayerID, b.height)
	for r := range grid {
		grid[r] = make([]PlayerID, b.width)
		copy(grid[r], b.cells[r*b.width:(r+1)*b.width])
	}
	return grid
}

// IntGrid is Grid with plain ints, the shape stored in history rows.
func (b *Board) IntGrid() [][]int {
	grid := make([][]int, b.height)
	for r := range grid {
		grid[r] = make([]int, b.width)
		for c := range grid[r] {
			grid[r][c] = int(b.cells[r*b.width+c])
		}
	}
	return grid
}

// Verify checks that every fill counter matches its column and that pieces
// sit on top of each other without gaps. A failure is a programming error.
func (b *Board) Verify() error {
	total := 0
	for col := 0; col < b.width; col++ {
		n := 0
		for row := b.height - 1; row >= 0; row-- {
			if b.cells[row*b.width+col] == Empty {
				break
			}
			n++
		}
		for row := b.height - n - 1; row >= 0; row-- {
			if b.cells[row*b.width+col] != Empty {
				return fmt.Errorf("column %d has a floating piece at row %d", col, row)
			}
		}
		if n != b.filled[col] {
			return fmt.Errorf("column %d counter is %d but holds %d pieces", col, b.filled[col], n)
		}
		total += n
	}
	if total != b.moves {
		return fmt.Errorf("move count is %d but board holds %d pieces", b.moves, total)
	}
	return nil
}
