package domain

import "strconv"

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opponent of p. Empty has no opponent and is returned as is.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4

	// smallest board on which a four-in-a-row fits
	MinDimension = ToWin
)

// Controller says who makes the moves for a player: a human at the
// console, or the computer at one of the intelligence levels.
type Controller int

const (
	Human           Controller = -1
	MinIntelligence Controller = 0
	MaxIntelligence Controller = 4
)

func (c Controller) IsHuman() bool {
	return c == Human
}

func (c Controller) Valid() bool {
	return c == Human || (c >= MinIntelligence && c <= MaxIntelligence)
}

func (c Controller) String() string {
	if c == Human {
		return "human"
	}
	return "level-" + strconv.Itoa(int(c))
}

// Move is the landing cell of a drop. Row -1 means there is no move.
type Move struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

var NoMove = Move{Row: -1, Column: -1}

func (m Move) Valid() bool {
	return m.Row >= 0
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "column out of range"
	ErrColumnFull        Error = "column is full"
	ErrInvalidPlayer     Error = "invalid player"
	ErrInvalidDimensions Error = "board must be at least 4x4"
	ErrInvalidLevel      Error = "intelligence level out of range"
	ErrGameOver          Error = "game is over"
)
