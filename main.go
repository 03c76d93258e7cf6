// Command tilemerge plays the 4x4 tile-merging game in a terminal.
//
// It supports three modes:
//  1. "play" (default) – full-screen terminal UI
//  2. "console" – line prompt reading W/A/S/D from stdin
//  3. "mcp" – MCP stdio server exposing the game as tools for agents
//
// Flags control the preset directory, the preset to play, the spawn seed and
// debug logging. Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/tilemerge/game/config"
	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
	"github.com/wricardo/mcp-training/tilemerge/game/session"
	"github.com/wricardo/mcp-training/tilemerge/transport/console"
	"github.com/wricardo/mcp-training/tilemerge/transport/mcp"
	"github.com/wricardo/mcp-training/tilemerge/transport/tui"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Tile Merge"
)

// Idle MCP sessions are pruned on this schedule.
const (
	cleanupInterval = time.Hour
	sessionMaxAge   = 24 * time.Hour
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// newCommand builds the command tree over the given streams.
func newCommand(in io.Reader, out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "tilemerge",
		Usage:     "slide and merge tiles on a 4x4 board",
		Version:   Version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing rules presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "preset",
				Usage:   "rules preset to play (default: classic)",
				Sources: cli.EnvVars("TILEMERGE_PRESET"),
			},
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "spawn seed, overriding the preset's (0 picks a random one)",
				Sources: cli.EnvVars("TILEMERGE_SEED"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("TILEMERGE_DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file (the terminal UI logs nowhere otherwise)",
				Sources: cli.EnvVars("TILEMERGE_LOG_FILE"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPlay(ctx, cmd)
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in a full-screen terminal UI",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPlay(ctx, cmd)
				},
			},
			{
				Name:  "console",
				Usage: "play with a line prompt (W=Up, S=Down, A=Left, D=Right)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runConsole(ctx, cmd, in, out, errOut)
				},
			},
			{
				Name:  "mcp",
				Usage: "serve the game as MCP tools over stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMCP(ctx, cmd, in, out, errOut)
				},
			},
			{
				Name:  "presets",
				Usage: "list the rules presets in the config directory",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPresets(ctx, cmd, out)
				},
			},
		},
	}
}

// newLogger creates a logger with timestamp formatting filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "tilemerge",
	})
}

// commandLogger writes to --log-file when set, otherwise to fallback.
// The returned close func is never nil.
func commandLogger(cmd *cli.Command, fallback io.Writer) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if cmd.Bool("debug") {
		level = log.DebugLevel
	}

	path := cmd.String("log-file")
	if path == "" {
		return newLogger(fallback, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(f, level), f.Close, nil
}

// initializeServices wires the config and session managers into a game service.
func initializeServices(cmd *cli.Command, logger *log.Logger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	var configs service.ConfigManager = configManager
	if cmd.IsSet("seed") {
		configs = seedOverride{ConfigManager: configManager, seed: cmd.Int64("seed")}
	}

	sessionManager := session.NewManager()
	return service.NewGameService(sessionManager, configs, logger), sessionManager, nil
}

// seedOverride hands out copies of every preset with the seed replaced.
type seedOverride struct {
	service.ConfigManager
	seed int64
}

func (s seedOverride) LoadConfig(name string) (*engine.Rules, error) {
	rules, err := s.ConfigManager.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	return s.apply(rules), nil
}

func (s seedOverride) GetDefault() *engine.Rules {
	return s.apply(s.ConfigManager.GetDefault())
}

func (s seedOverride) apply(rules *engine.Rules) *engine.Rules {
	out := *rules
	out.Seed = s.seed
	return &out
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	// The UI owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := commandLogger(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, _, err := initializeServices(cmd, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "app", AppName, "version", Version, "mode", "play")
	return tui.Run(ctx, svc, cmd.String("preset"), logger)
}

func runConsole(ctx context.Context, cmd *cli.Command, in io.Reader, out, errOut io.Writer) error {
	logger, closeLog, err := commandLogger(cmd, errOut)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, _, err := initializeServices(cmd, logger)
	if err != nil {
		return err
	}
	logger.Debug("starting", "app", AppName, "version", Version, "mode", "console")

	opts := []console.Option{console.WithLogger(logger)}
	if f, ok := out.(*os.File); ok && term.IsTerminal(f.Fd()) {
		opts = append(opts, console.WithClearScreen())
	}
	return console.New(svc, in, out, opts...).Run(ctx, cmd.String("preset"))
}

func runMCP(ctx context.Context, cmd *cli.Command, in io.Reader, out, errOut io.Writer) error {
	// stdout carries the protocol; logs go to stderr or --log-file.
	logger, closeLog, err := commandLogger(cmd, errOut)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, sessions, err := initializeServices(cmd, logger)
	if err != nil {
		return err
	}
	go sessions.RunCleanup(ctx, cleanupInterval, sessionMaxAge)

	logger.Info("MCP stdio server ready", "app", AppName, "version", Version)
	err = mcp.NewServer(svc, logger, Version).Serve(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

func runPresets(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	svc, _, err := initializeServices(cmd, log.New(io.Discard))
	if err != nil {
		return err
	}
	configs, err := svc.ListConfigs(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Presets in %s:\n\n", cmd.String("config-dir"))
	for _, cfg := range configs {
		fmt.Fprintf(out, "  %-10s %s (4s: %.0f%%, starting tiles: %d)\n",
			cfg.ConfigID, cfg.Description, cfg.FourProbability*100, cfg.InitialTiles)
	}
	return nil
}
