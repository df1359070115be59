package game

import (
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

// Snapshot is a read-only copy of a game taken after a turn. It is what
// leaves the game loop: spectators, caches and the HTTP API only ever see
// snapshots, never the live board.
type Snapshot struct {
	GameID      string          `json:"gameId"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Board       [][]int         `json:"board"`
	Controllers [2]string       `json:"controllers"`
	Current     domain.PlayerID `json:"currentPlayer"`
	Round       int             `json:"round"`
	MoveCount   int             `json:"moveCount"`
	Status      Status          `json:"status"`
	Winner      domain.PlayerID `json:"winner"`
	LastMove    *Turn           `json:"lastMove,omitempty"`
	StartedAt   time.Time       `json:"startedAt"`
	FinishedAt  *time.Time      `json:"finishedAt,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		GameID:      g.ID,
		Width:       g.Board.Width(),
		Height:      g.Board.Height(),
		Board:       g.Board.IntGrid(),
		Controllers: [2]string{g.Controllers[0].String(), g.Controllers[1].String()},
		Current:     g.Current,
		Round:       g.Round,
		MoveCount:   g.Board.MoveCount(),
		Status:      g.Status,
		Winner:      g.Winner,
		StartedAt:   g.CreatedAt,
	}
	if n := len(g.History); n > 0 {
		last := g.History[n-1]
		s.LastMove = &last
	}
	if g.IsFinished() {
		finished := g.FinishedAt
		s.FinishedAt = &finished
	}
	return s
}

// Record is the finished game as it is archived.
type Record struct {
	GameID      string
	Controllers [2]domain.Controller
	Status      Status
	Winner      domain.PlayerID
	Rounds      int
	Width       int
	Height      int
	Board       [][]int
	Moves       []Turn
	CreatedAt   time.Time
	FinishedAt  time.Time
}

func (g *Game) Record() Record {
	moves := make([]Turn, len(g.History))
	copy(moves, g.History)
	return Record{
		GameID:      g.ID,
		Controllers: g.Controllers,
		Status:      g.Status,
		Winner:      g.Winner,
		Rounds:      g.Round,
		Width:       g.Board.Width(),
		Height:      g.Board.Height(),
		Board:       g.Board.IntGrid(),
		Moves:       moves,
		CreatedAt:   g.CreatedAt,
		FinishedAt:  g.FinishedAt,
	}
}

// Outcome returns "win", "loss" or "draw" for player.
func (r Record) Outcome(player domain.PlayerID) string {
	switch {
	case r.Status == StatusDraw:
		return "draw"
	case r.Winner == player:
		return "win"
	default:
		return "loss"
	}
}
