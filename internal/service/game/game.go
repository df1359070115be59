package game

import (
	"fmt"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/pkg/uid"
)

// to represent the game status
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

func (s Status) Finished() bool {
	return s == StatusWon || s == StatusDraw
}

const StepHuman = "human"

// Settings describe one game: board size and who controls each player.
type Settings struct {
	Width       int
	Height      int
	Controllers [2]domain.Controller
}

func DefaultSettings() Settings {
	return Settings{
		Width:       domain.Columns,
		Height:      domain.Rows,
		Controllers: [2]domain.Controller{domain.Human, domain.Human},
	}
}

// Turn is one applied move.
type Turn struct {
	Round  int             `json:"round"`
	Player domain.PlayerID `json:"player"`
	Move   domain.Move     `json:"move"`
	Step   string          `json:"step"`
}

// Game owns the live board and decides when the game ends. It is driven
// from a single goroutine.
type Game struct {
	ID          string
	Board       *domain.Board
	Controllers [2]domain.Controller
	Current     domain.PlayerID
	Round       int
	Status      Status
	Winner      domain.PlayerID
	History     []Turn
	CreatedAt   time.Time
	FinishedAt  time.Time
}

func New(settings Settings) (*Game, error) {
	for i, c := range settings.Controllers {
		if !c.Valid() {
			return nil, fmt.Errorf("player %d: %w", i+1, domain.ErrInvalidLevel)
		}
	}
	board, err := domain.NewBoard(settings.Width, settings.Height)
	if err != nil {
		return nil, err
	}

	return &Game{
		ID:          uid.GenerateGameID(),
		Board:       board,
		Controllers: settings.Controllers,
		Current:     domain.Player1,
		Round:       1,
		Status:      StatusInProgress,
		Winner:      domain.Empty,
		CreatedAt:   time.Now(),
	}, nil
}

// Controller returns who moves for player.
func (g *Game) Controller(player domain.PlayerID) domain.Controller {
	if player == domain.Player2 {
		return g.Controllers[1]
	}
	return g.Controllers[0]
}

func (g *Game) CurrentIsHuman() bool {
	return g.Controller(g.Current).IsHuman()
}

// AllComputer reports whether nobody at the console takes part.
func (g *Game) AllComputer() bool {
	return !g.Controllers[0].IsHuman() && !g.Controllers[1].IsHuman()
}

func (g *Game) IsFinished() bool {
	return g.Status.Finished()
}

// PlayHuman drops the current player's piece into column. Column errors
// come back untouched so the caller can ask again.
func (g *Game) PlayHuman(column int) (Turn, error) {
	if g.IsFinished() {
		return Turn{}, domain.ErrGameOver
	}
	row, err := g.Board.Drop(column, g.Current)
	if err != nil {
		return Turn{}, err
	}
	return g.complete(domain.Move{Row: row, Column: column}, StepHuman), nil
}

// PlayComputer lets the engine move for the current player at its level.
func (g *Game) PlayComputer(engine *bot.Engine) (Turn, error) {
	if g.IsFinished() {
		return Turn{}, domain.ErrGameOver
	}
	d, err := engine.Play(g.Controller(g.Current), g.Current, g.Board)
	if err != nil {
		return Turn{}, err
	}
	return g.complete(d.Move, d.Step), nil
}

// complete runs the win check on the cell just filled, then the full-board
// check, then hands the turn over.
func (g *Game) complete(move domain.Move, step string) Turn {
	turn := Turn{Round: g.Round, Player: g.Current, Move: move, Step: step}
	g.History = append(g.History, turn)

	switch {
	case domain.HasPlayerWon(g.Board, move.Row, move.Column, g.Current):
		g.Status = StatusWon
		g.Winner = g.Current
		g.FinishedAt = time.Now()
	case g.Board.IsFull():
		g.Status = StatusDraw
		g.FinishedAt = time.Now()
	default:
		if g.Current == domain.Player2 {
			g.Round++
		}
		g.Current = g.Current.Other()
	}
	return turn
}
