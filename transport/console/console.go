// Package console plays a game over a line-oriented reader and writer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wricardo/mcp-training/tilemerge/game/render"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

const (
	Prompt       = "Enter move (W=Up, S=Down, A=Left, D=Right): "
	InvalidInput = "Invalid input! Use W, A, S, D."
	clearScreen  = "\033[H\033[2J"
)

// Driver reads one move per line and redraws the board after each.
type Driver struct {
	svc         service.GameService
	in          *bufio.Scanner
	out         io.Writer
	logger      *log.Logger
	clearScreen bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithClearScreen clears the terminal before every redraw.
func WithClearScreen() Option {
	return func(d *Driver) { d.clearScreen = true }
}

// WithLogger sets the logger used for driver diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// New creates a console driver.
func New(svc service.GameService, in io.Reader, out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run starts a game with the named preset and plays it until the board is
// stuck, the input ends, or the player types q.
func (d *Driver) Run(ctx context.Context, configName string) error {
	info, err := d.svc.CreateSession(ctx, configName)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	defer d.svc.DeleteSession(context.WithoutCancel(ctx), info.ID)

	d.logger.Debug("console game started", "session", info.ID, "config", info.ConfigName)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state, err := d.svc.GetGameState(ctx, info.ID)
		if err != nil {
			return err
		}

		d.draw(state)
		if state.GameOver {
			fmt.Fprintln(d.out, service.MessageGameOver)
			return nil
		}

		fmt.Fprint(d.out, Prompt)
		if !d.in.Scan() {
			fmt.Fprintln(d.out)
			return d.in.Err()
		}

		move := strings.ToLower(strings.TrimSpace(d.in.Text()))
		switch move {
		case "q", "quit":
			return nil
		case "w", "a", "s", "d":
		default:
			fmt.Fprintln(d.out, InvalidInput)
			continue
		}

		if _, err := d.svc.Move(ctx, info.ID, move); err != nil {
			if errors.Is(err, service.ErrGameOver) {
				continue
			}
			return err
		}
	}
}

func (d *Driver) draw(state *service.GameState) {
	if d.clearScreen {
		fmt.Fprint(d.out, clearScreen)
	}
	fmt.Fprint(d.out, render.Text(state.Grid))
}
