package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
	"github.com/wricardo/mcp-training/tilemerge/game/session"
)

// stubService implements the parts of service.GameService the driver uses.
type stubService struct {
	service.GameService
	grid    engine.Grid
	moves   []string
	deleted []string
	moveErr error
}

func (s *stubService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	return &service.SessionInfo{ID: "stub", ConfigName: configName}, nil
}

func (s *stubService) GetGameState(ctx context.Context, id string) (*service.GameState, error) {
	return service.NewGameState(s.grid, len(s.moves)), nil
}

func (s *stubService) Move(ctx context.Context, id, direction string) (*service.MoveResult, error) {
	s.moves = append(s.moves, direction)
	return &service.MoveResult{}, s.moveErr
}

func (s *stubService) DeleteSession(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type rulesOnly struct{ rules *engine.Rules }

func (r rulesOnly) LoadConfig(name string) (*engine.Rules, error) { return r.rules, nil }
func (r rulesOnly) ListConfigs() ([]*service.ConfigInfo, error)   { return nil, nil }
func (r rulesOnly) GetDefault() *engine.Rules                     { return r.rules }

func TestRun_PassesMovesAndRejectsInvalidInput(t *testing.T) {
	svc := &stubService{grid: engine.Grid{{2, 0, 0, 0}}}
	var out bytes.Buffer
	d := New(svc, strings.NewReader("w\nA\nx\n up \nd\nq\n"), &out)

	if err := d.Run(context.Background(), "classic"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	expected := []string{"w", "a", "d"}
	if strings.Join(svc.moves, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected moves %v, got %v", expected, svc.moves)
	}
	if got := strings.Count(out.String(), InvalidInput); got != 2 {
		t.Errorf("Expected 2 invalid input messages, got %d", got)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "stub" {
		t.Errorf("Expected session to be deleted on exit, got %v", svc.deleted)
	}
}

func TestRun_DrawsBoardAndPrompt(t *testing.T) {
	svc := &stubService{grid: engine.Grid{{2, 0, 0, 0}, {0, 0, 0, 4}}}
	var out bytes.Buffer
	d := New(svc, strings.NewReader("q\n"), &out)

	if err := d.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	s := out.String()
	for _, want := range []string{"2048 Game", "+------+------+------+------+", "|  2   |", "|  4   |", Prompt} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in output:\n%s", want, s)
		}
	}
	if strings.Contains(s, clearScreen) {
		t.Error("Did not expect a clear-screen sequence by default")
	}
}

func TestRun_ClearScreen(t *testing.T) {
	svc := &stubService{}
	var out bytes.Buffer
	d := New(svc, strings.NewReader("q\n"), &out, WithClearScreen())

	if err := d.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), clearScreen) {
		t.Error("Expected output to start with a clear-screen sequence")
	}
}

func TestRun_GameOver(t *testing.T) {
	svc := &stubService{grid: engine.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}}
	var out bytes.Buffer
	d := New(svc, strings.NewReader("w\n"), &out)

	if err := d.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Game Over! No moves left.") {
		t.Errorf("Expected game over message, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), Prompt) {
		t.Error("Should not prompt on a terminal board")
	}
	if len(svc.moves) != 0 {
		t.Errorf("Expected no moves, got %v", svc.moves)
	}
}

func TestRun_EOF(t *testing.T) {
	svc := &stubService{}
	d := New(svc, strings.NewReader("a\n"), &bytes.Buffer{})

	if err := d.Run(context.Background(), ""); err != nil {
		t.Fatalf("Expected clean exit on EOF, got %v", err)
	}
	if len(svc.moves) != 1 {
		t.Errorf("Expected 1 move before EOF, got %d", len(svc.moves))
	}
}

func TestRun_MoveError(t *testing.T) {
	boom := errors.New("boom")
	svc := &stubService{moveErr: boom}
	d := New(svc, strings.NewReader("a\n"), &bytes.Buffer{})

	if err := d.Run(context.Background(), ""); !errors.Is(err, boom) {
		t.Errorf("Expected move error, got %v", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(&stubService{}, strings.NewReader("a\n"), &bytes.Buffer{})
	if err := d.Run(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRun_WithService(t *testing.T) {
	rules := engine.DefaultRules()
	rules.Seed = 42
	sessions := session.NewManager()
	svc := service.NewGameService(sessions, rulesOnly{rules: rules}, nil)

	var out bytes.Buffer
	d := New(svc, strings.NewReader("a\nd\nw\ns\nq\n"), &out)
	if err := d.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if strings.Count(out.String(), "2048 Game") != 5 {
		t.Errorf("Expected the board to be drawn 5 times, got %d", strings.Count(out.String(), "2048 Game"))
	}
	if sessions.Count() != 0 {
		t.Errorf("Expected the session to be removed, %d left", sessions.Count())
	}
}
