package game

import (
	"context"
	"errors"
	"log"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

// MoveInput supplies human moves. NextColumn returns a 0-indexed column
// that is already known to be on the board.
type MoveInput interface {
	NextColumn(ctx context.Context, round int, player domain.PlayerID) (int, error)
	// Pause is called between rounds when two computers play each other.
	Pause(ctx context.Context) error
}

// Renderer shows the game to whoever sits at the console.
type Renderer interface {
	Board(b *domain.Board)
	ComputerMoved(round int, player domain.PlayerID, column int)
	ColumnFull(column int)
	InvalidColumn()
	Finished(winner domain.PlayerID)
}

// Runner plays one game at a time from start to finish.
type Runner struct {
	engine    *bot.Engine
	input     MoveInput
	out       Renderer
	observers []Observer
}

func NewRunner(engine *bot.Engine, input MoveInput, out Renderer, observers ...Observer) *Runner {
	return &Runner{
		engine:    engine,
		input:     input,
		out:       out,
		observers: observers,
	}
}

// Run drives g until it is won or drawn. It only returns an error when
// input fails or ctx is cancelled; observer failures are logged.
func (r *Runner) Run(ctx context.Context, g *Game) error {
	r.notify("start", func(o Observer) error {
		return o.GameStarted(ctx, g.Snapshot())
	})

	for !g.IsFinished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.out.Board(g.Board)

		var turn Turn
		if g.CurrentIsHuman() {
			column, err := r.input.NextColumn(ctx, g.Round, g.Current)
			if err != nil {
				return err
			}
			turn, err = g.PlayHuman(column)
			switch {
			case errors.Is(err, domain.ErrColumnFull):
				r.out.ColumnFull(column)
				continue
			case errors.Is(err, domain.ErrInvalidColumn):
				r.out.InvalidColumn()
				continue
			case err != nil:
				return err
			}
		} else {
			var err error
			turn, err = g.PlayComputer(r.engine)
			if err != nil {
				return err
			}
			r.out.ComputerMoved(turn.Round, turn.Player, turn.Move.Column)
		}

		snap := g.Snapshot()
		r.notify("move", func(o Observer) error {
			return o.MoveMade(ctx, snap)
		})

		// let the console watch computer-only games one round at a time
		if !g.IsFinished() && turn.Player == domain.Player2 && g.AllComputer() {
			r.out.Board(g.Board)
			if err := r.input.Pause(ctx); err != nil {
				return err
			}
		}
	}

	r.out.Board(g.Board)
	r.out.Finished(g.Winner)

	snap, record := g.Snapshot(), g.Record()
	r.notify("finish", func(o Observer) error {
		return o.GameFinished(ctx, snap, record)
	})
	return nil
}

func (r *Runner) notify(event string, fn func(Observer) error) {
	for _, o := range r.observers {
		if err := fn(o); err != nil {
			log.Printf("[GAME] Observer failed on %s: %v", event, err)
		}
	}
}
