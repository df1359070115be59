package bot

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/iamasit07/connect-four/internal/domain"
)

// layout builds a board from rows drawn top first ('.', 'X' = Player1,
// 'O' = Player2), dropping pieces bottom-up.
func layout(t *testing.T, rows ...string) *domain.Board {
	t.Helper()
	b, err := domain.NewBoard(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("bad layout: %v", err)
	}
	for col := 0; col < b.Width(); col++ {
		for row := b.Height() - 1; row >= 0; row-- {
			var p domain.PlayerID
			switch rows[row][col] {
			case 'X':
				p = domain.Player1
			case 'O':
				p = domain.Player2
			default:
				continue
			}
			if got, err := b.Drop(col, p); err != nil || got != row {
				t.Fatalf("layout is floating at (%d,%d)", row, col)
			}
		}
	}
	return b
}

func newTestEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func bottomThree(t *testing.T) *domain.Board {
	t.Helper()
	b := domain.NewStandardBoard()
	for col := 0; col < 3; col++ {
		if _, err := b.Drop(col, domain.Player1); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	return b
}

func TestFindWinningMoveEmptyBoard(t *testing.T) {
	b := domain.NewStandardBoard()
	if m := FindWinningMove(b, domain.Player1); m.Valid() {
		t.Fatalf("empty board has no winning move, got %+v", m)
	}
}

func TestFindWinningMoveBottomRow(t *testing.T) {
	b := bottomThree(t)
	m := FindWinningMove(b, domain.Player1)
	if m != (domain.Move{Row: 5, Column: 3}) {
		t.Fatalf("expected (5,3), got %+v", m)
	}
	if b.MoveCount() != 3 || b.FillCount(3) != 0 {
		t.Fatalf("looking for a win must not touch the board")
	}
}

func TestBlockWinningMoveFindsOpponentsCell(t *testing.T) {
	b := bottomThree(t)
	m := BlockWinningMove(b, domain.Player2)
	if m != (domain.Move{Row: 5, Column: 3}) {
		t.Fatalf("expected Player2 to block at (5,3), got %+v", m)
	}

	for _, level := range []domain.Controller{2, 3, 4} {
		d, err := newTestEngine(1).Choose(level, domain.Player2, b)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if d.Move != (domain.Move{Row: 5, Column: 3}) || d.Step != StepBlockWin {
			t.Fatalf("level %d: expected block at (5,3), got %+v", level, d)
		}
	}
}

func TestFindWinningMovePrefersLowestColumn(t *testing.T) {
	// X wins in column 0 (vertical) and in column 5 (bottom row)
	b := layout(t,
		".......",
		".......",
		".......",
		"X......",
		"X......",
		"XOXXX..",
	)
	m := FindWinningMove(b, domain.Player1)
	if m != (domain.Move{Row: 2, Column: 0}) {
		t.Fatalf("expected lowest winning column 0, got %+v", m)
	}
}

func TestWinningMoveIsReallyAWin(t *testing.T) {
	b := layout(t,
		".......",
		".......",
		".......",
		"..XO...",
		".XOO...",
		"XOOX...",
	)
	m := FindWinningMove(b, domain.Player1)
	if !m.Valid() {
		t.Fatalf("expected a winning move")
	}
	applied := b.Clone()
	row, err := applied.Drop(m.Column, domain.Player1)
	if err != nil || row != m.Row {
		t.Fatalf("move %+v does not match a drop (row %d, err %v)", m, row, err)
	}
	if !domain.HasPlayerWon(applied, row, m.Column, domain.Player1) {
		t.Fatalf("move %+v does not win", m)
	}
}

func TestLevelTwoBlocksBeforeWinning(t *testing.T) {
	// X threatens (5,3); O can win at (2,6)
	b := layout(t,
		".......",
		".......",
		".......",
		"......O",
		"......O",
		"XXX...O",
	)

	d, err := newTestEngine(7).Choose(2, domain.Player2, b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Move != (domain.Move{Row: 5, Column: 3}) || d.Step != StepBlockWin {
		t.Fatalf("level 2 should block first, got %+v", d)
	}

	for _, level := range []domain.Controller{1, 3, 4} {
		d, err := newTestEngine(7).Choose(level, domain.Player2, b)
		if err != nil {
			t.Fatal(err)
		}
		if d.Move != (domain.Move{Row: 2, Column: 6}) || d.Step != StepFindWin {
			t.Fatalf("level %d should take the win, got %+v", level, d)
		}
	}
}

func TestTierSteps(t *testing.T) {
	e := newTestEngine(1)
	want := map[domain.Controller][]string{
		0: {},
		1: {StepFindWin},
		2: {StepBlockWin, StepFindWin},
		3: {StepFindWin, StepBlockWin},
		4: {StepFindWin, StepBlockWin, StepRandomSafe},
	}
	for level, steps := range want {
		got, err := e.Steps(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if !reflect.DeepEqual(got, steps) {
			t.Errorf("level %d steps = %v, want %v", level, got, steps)
		}
	}
}

func TestInvalidLevelIsRejected(t *testing.T) {
	e := newTestEngine(1)
	b := domain.NewStandardBoard()
	for _, level := range []domain.Controller{domain.Human, 5, 42} {
		if _, err := e.Choose(level, domain.Player1, b); !errors.Is(err, domain.ErrInvalidLevel) {
			t.Errorf("level %d: expected ErrInvalidLevel, got %v", level, err)
		}
	}
}

func TestLevelZeroAlwaysRandom(t *testing.T) {
	b := bottomThree(t)
	for seed := int64(0); seed < 20; seed++ {
		d, err := newTestEngine(seed).Choose(0, domain.Player1, b)
		if err != nil {
			t.Fatal(err)
		}
		if d.Step != StepRandom {
			t.Fatalf("level 0 should only play randomly, got step %q", d.Step)
		}
		if d.Move.Row != b.LandingRow(d.Move.Column) {
			t.Fatalf("random move %+v does not land on the column's next row", d.Move)
		}
	}
}

func TestLevelOneFallsBackToRandom(t *testing.T) {
	b := domain.NewStandardBoard()
	d, err := newTestEngine(3).Choose(1, domain.Player1, b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Step != StepRandom || d.Move.Row != domain.Rows-1 {
		t.Fatalf("expected random bottom-row move, got %+v", d)
	}
}

// O has three in row 4; a piece in column 3 would let O drop on top of it.
func trapBoard(t *testing.T) *domain.Board {
	return layout(t,
		".......",
		".......",
		".......",
		".......",
		"OOO....",
		"XXO....",
	)
}

func TestDropRandomSafeAvoidsGivingAWin(t *testing.T) {
	b := trapBoard(t)
	for seed := int64(0); seed < 50; seed++ {
		m := newTestEngine(seed).DropRandomSafe(b, domain.Player1)
		if !m.Valid() {
			t.Fatalf("seed %d: a safe column exists", seed)
		}
		if m.Column == 3 {
			t.Fatalf("seed %d: column 3 hands Player2 the game", seed)
		}
		if m.Row != b.LandingRow(m.Column) {
			t.Fatalf("seed %d: move %+v is not a landing cell", seed, m)
		}
	}
	if b.MoveCount() != 6 {
		t.Fatalf("safe search changed the board")
	}
}

func TestLevelFourUsesSafeMoves(t *testing.T) {
	b := trapBoard(t)
	for seed := int64(0); seed < 50; seed++ {
		d, err := newTestEngine(seed).Choose(4, domain.Player1, b)
		if err != nil {
			t.Fatal(err)
		}
		if d.Step != StepRandomSafe || d.Move.Column == 3 {
			t.Fatalf("seed %d: expected a safe move, got %+v", seed, d)
		}
	}
}

// Only column 3 is open, and filling it lets O complete the top row.
func noSafeBoard(t *testing.T) *domain.Board {
	return layout(t,
		"OOO.",
		"XXO.",
		"OOXX",
		"XXOO",
	)
}

func TestDropRandomSafeWithoutSafeColumn(t *testing.T) {
	b := noSafeBoard(t)
	if m := newTestEngine(1).DropRandomSafe(b, domain.Player1); m.Valid() {
		t.Fatalf("no column is safe, got %+v", m)
	}

	d, err := newTestEngine(1).Choose(4, domain.Player1, b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Step != StepRandom || d.Move != (domain.Move{Row: 1, Column: 3}) {
		t.Fatalf("expected random fallback into (1,3), got %+v", d)
	}
}

func TestPlayDropsOnLiveBoard(t *testing.T) {
	b := bottomThree(t)
	d, err := newTestEngine(1).Play(3, domain.Player1, b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Move != (domain.Move{Row: 5, Column: 3}) {
		t.Fatalf("expected winning drop at (5,3), got %+v", d.Move)
	}
	if b.Cell(5, 3) != domain.Player1 || b.FillCount(3) != 1 {
		t.Fatalf("play must place the piece on the live board")
	}
	if err := b.Verify(); err != nil {
		t.Fatalf("board invariant broken: %v", err)
	}
}

func TestPlayOnFullBoard(t *testing.T) {
	b, _ := domain.NewBoard(4, 4)
	for col := 0; col < 4; col++ {
		for i := 0; i < 4; i++ {
			p := domain.Player1
			if (col/2+i)%2 == 1 {
				p = domain.Player2
			}
			b.Drop(col, p)
		}
	}
	if _, err := newTestEngine(1).Play(0, domain.Player1, b); !errors.Is(err, domain.ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull on a full board, got %v", err)
	}
}
