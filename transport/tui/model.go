// Package tui is the interactive terminal front end, built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/render"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	gameOverStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Model is the bubbletea model for one game session.
type Model struct {
	ctx       context.Context
	svc       service.GameService
	logger    *log.Logger
	sessionID string
	config    string
	state     *service.GameState
	status    string
	err       error
	keys      keyMap
	help      help.Model
}

// New starts a session with the named preset and returns a model showing it.
func New(ctx context.Context, svc service.GameService, configName string, logger *log.Logger) (Model, error) {
	info, err := svc.CreateSession(ctx, configName)
	if err != nil {
		return Model{}, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		ctx:       ctx,
		svc:       svc,
		logger:    logger,
		sessionID: info.ID,
		config:    info.ConfigName,
		state:     info.GameState,
		status:    "Use the arrow keys to slide the tiles.",
		keys:      defaultKeys,
		help:      help.New(),
	}, nil
}

// SessionID returns the id of the session the model plays.
func (m Model) SessionID() string { return m.sessionID }

// State returns the last known game state.
func (m Model) State() *service.GameState { return m.state }

// Status returns the status line.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Up):
			m.move(engine.Up)
		case key.Matches(msg, m.keys.Down):
			m.move(engine.Down)
		case key.Matches(msg, m.keys.Left):
			m.move(engine.Left)
		case key.Matches(msg, m.keys.Right):
			m.move(engine.Right)
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *Model) move(d engine.Direction) {
	result, err := m.svc.Move(m.ctx, m.sessionID, d.String())
	switch {
	case errors.Is(err, service.ErrGameOver):
		m.status = service.MessageGameOver + " Press r for a new game."
		return
	case err != nil:
		m.err = err
		m.logger.Error("move failed", "session", m.sessionID, "direction", d, "err", err)
		return
	}

	m.err = nil
	m.state = result.GameState
	m.status = result.Message
	if result.GameState.GameOver {
		m.status = service.MessageGameOver + " Press r for a new game."
	}
}

func (m *Model) reset() {
	state, err := m.svc.Reset(m.ctx, m.sessionID)
	if err != nil {
		m.err = err
		m.logger.Error("reset failed", "session", m.sessionID, "err", err)
		return
	}
	m.err = nil
	m.state = state
	m.status = service.MessageNewGame
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(render.Title))
	b.WriteString(statsStyle.Render(fmt.Sprintf("  %s · session %s", m.config, m.sessionID)))
	b.WriteString("\n\n")
	b.WriteString(render.Styled(m.state.Grid))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf("turn %d · max tile %d · sum %d", m.state.Turn, m.state.MaxTile, m.state.Sum)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.state.GameOver:
		b.WriteString(gameOverStyle.Render(m.status))
	default:
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Run plays a game in the terminal until the player quits. The session is
// deleted on exit.
func Run(ctx context.Context, svc service.GameService, configName string, logger *log.Logger, opts ...tea.ProgramOption) error {
	m, err := New(ctx, svc, configName, logger)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	defer svc.DeleteSession(context.WithoutCancel(ctx), m.sessionID)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
