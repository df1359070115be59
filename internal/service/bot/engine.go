package bot

import (
	"math/rand"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	StepFindWin    = "find-win"
	StepBlockWin   = "block-win"
	StepRandomSafe = "random-safe"
	StepRandom     = "random"
)

// NamedStep ties a step to the name reported with its decisions.
type NamedStep struct {
	Name string
	Run  Step
}

// Decision is the move a computer player settled on and the step that
// produced it.
type Decision struct {
	Move domain.Move
	Step string
}

// Engine picks moves for computer players. Randomness comes from the rand
// source it was built with, so engines with fixed seeds are reproducible.
type Engine struct {
	rng   *rand.Rand
	tiers [][]NamedStep
}

func NewEngine(rng *rand.Rand) *Engine {
	e := &Engine{rng: rng}
	e.tiers = e.buildTiers()
	return e
}

// buildTiers lists, per intelligence level, the steps tried in order.
// Level 2 blocks before it looks for its own win; level 3 does the reverse.
func (e *Engine) buildTiers() [][]NamedStep {
	findWin := NamedStep{Name: StepFindWin, Run: FindWinningMove}
	blockWin := NamedStep{Name: StepBlockWin, Run: BlockWinningMove}
	randomSafe := NamedStep{Name: StepRandomSafe, Run: e.DropRandomSafe}

	return [][]NamedStep{
		{},
		{findWin},
		{blockWin, findWin},
		{findWin, blockWin},
		{findWin, blockWin, randomSafe},
	}
}

// Steps returns the step names of a level in evaluation order.
func (e *Engine) Steps(level domain.Controller) ([]string, error) {
	if level < domain.MinIntelligence || level > domain.MaxIntelligence {
		return nil, domain.ErrInvalidLevel
	}
	names := make([]string, 0, len(e.tiers[level]))
	for _, s := range e.tiers[level] {
		names = append(names, s.Name)
	}
	return names, nil
}

// First runs the steps in order and returns the first real move along with
// the name of the step that found it.
func First(b *domain.Board, player domain.PlayerID, steps ...NamedStep) (Decision, bool) {
	for _, s := range steps {
		if m := s.Run(b, player); m.Valid() {
			return Decision{Move: m, Step: s.Name}, true
		}
	}
	return Decision{Move: domain.NoMove}, false
}

// DropRandom picks any open column with no lookahead.
func (e *Engine) DropRandom(b *domain.Board, player domain.PlayerID) domain.Move {
	open := b.OpenColumns()
	if len(open) == 0 {
		return domain.NoMove
	}
	col := open[e.rng.Intn(len(open))]
	return domain.Move{Row: b.LandingRow(col), Column: col}
}

// DropRandomSafe tries the open columns in random order and returns the
// first one after which the opponent has no immediate win. NoMove means
// every column loses on the spot.
func (e *Engine) DropRandomSafe(b *domain.Board, player domain.PlayerID) domain.Move {
	open := b.OpenColumns()
	e.rng.Shuffle(len(open), func(i, j int) {
		open[i], open[j] = open[j], open[i]
	})

	for _, col := range open {
		move, losing := leavesOpponentWin(b, col, player)
		if !losing {
			return move
		}
	}
	return domain.NoMove
}

// Choose decides where player moves at the given level without touching b.
func (e *Engine) Choose(level domain.Controller, player domain.PlayerID, b *domain.Board) (Decision, error) {
	if level < domain.MinIntelligence || level > domain.MaxIntelligence {
		return Decision{Move: domain.NoMove}, domain.ErrInvalidLevel
	}
	if !player.IsPlayer() {
		return Decision{Move: domain.NoMove}, domain.ErrInvalidPlayer
	}

	if d, ok := First(b, player, e.tiers[level]...); ok {
		return d, nil
	}

	// nothing in the tier applied, any open column will do
	m := e.DropRandom(b, player)
	if !m.Valid() {
		return Decision{Move: domain.NoMove}, domain.ErrColumnFull
	}
	return Decision{Move: m, Step: StepRandom}, nil
}

// Play chooses a move and drops the piece on the live board.
func (e *Engine) Play(level domain.Controller, player domain.PlayerID, b *domain.Board) (Decision, error) {
	d, err := e.Choose(level, player, b)
	if err != nil {
		return d, err
	}

	row, err := b.Drop(d.Move.Column, player)
	if err != nil {
		return Decision{Move: domain.NoMove}, err
	}
	d.Move.Row = row
	return d, nil
}
