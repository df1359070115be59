package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	invalidColumnMsg = "\t*** Invalid entry.  Please enter a valid column number. ***\n\n"
	invalidEntryMsg  = "\n\t*** Invalid entry.  Please try again.\n\n"
)

// Prompter asks the person at the console for settings and moves. Every
// question is repeated until the answer is usable.
type Prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	width int
}

func NewPrompter(in io.Reader, out io.Writer, width int) *Prompter {
	return &Prompter{
		in:    bufio.NewScanner(in),
		out:   out,
		width: width,
	}
}

func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// NextColumn returns a 0-indexed column inside the board.
func (p *Prompter) NextColumn(ctx context.Context, round int, player domain.PlayerID) (int, error) {
	for {
		answer, err := p.ask(ctx, fmt.Sprintf("Round %d: Player %d, please enter the number of the column where you want to drop your piece. ", round, player))
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(p.out)

		column, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || column < 1 || column > p.width {
			fmt.Fprint(p.out, invalidColumnMsg)
			continue
		}
		return column - 1, nil
	}
}

func (p *Prompter) Pause(ctx context.Context) error {
	_, err := p.ask(ctx, "Press enter to continue to the next round. ")
	return err
}

// yesNo keeps asking until it gets y or n.
func (p *Prompter) yesNo(ctx context.Context, question, retry string) (bool, error) {
	for {
		answer, err := p.ask(ctx, question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprint(p.out, retry)
	}
}

// Controllers asks, for both players, whether the computer plays and at
// which intelligence level.
func (p *Prompter) Controllers(ctx context.Context) ([2]domain.Controller, error) {
	var controllers [2]domain.Controller
	for i, name := range []string{"one", "two"} {
		computer, err := p.yesNo(ctx, fmt.Sprintf("Would you like player %s to be played by the computer?  (Y/N) ", name), invalidEntryMsg)
		if err != nil {
			return controllers, err
		}
		if !computer {
			controllers[i] = domain.Human
			continue
		}

		level, err := p.level(ctx)
		if err != nil {
			return controllers, err
		}
		controllers[i] = level
	}
	return controllers, nil
}

func (p *Prompter) level(ctx context.Context) (domain.Controller, error) {
	question := fmt.Sprintf("The computer's intelligence may be as low as %d or as high as %d.  What would you like it to be? ",
		domain.MinIntelligence, domain.MaxIntelligence)
	for {
		answer, err := p.ask(ctx, question)
		if err != nil {
			return 0, err
		}
		level, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && domain.Controller(level) >= domain.MinIntelligence && domain.Controller(level) <= domain.MaxIntelligence {
			return domain.Controller(level), nil
		}
		fmt.Fprint(p.out, invalidEntryMsg)
	}
}

func (p *Prompter) PlayAgain(ctx context.Context) (bool, error) {
	fmt.Fprintln(p.out)
	return p.yesNo(ctx, "Play another game (Y/N)? ", "   *** Invalid entry.  Try again.\n\n")
}
