package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
)

func createTestRules() *engine.Rules {
	return &engine.Rules{
		Name:            "test",
		Description:     "Test rules",
		FourProbability: 0.1,
		InitialTiles:    2,
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	rules := createTestRules()

	t.Run("create with custom ID", func(t *testing.T) {
		sess, err := manager.Create("test-session", rules)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if sess.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", sess.ID)
		}
		if engine.CountNonZero(sess.Grid) != 2 {
			t.Errorf("Expected 2 starting tiles, got grid\n%v", sess.Grid)
		}
		if sess.Rand == nil {
			t.Error("Expected a random source")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		sess, err := manager.Create("", rules)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(sess.ID) != 8 {
			t.Errorf("Expected 8-character session ID, got %q", sess.ID)
		}
		if strings.Trim(sess.ID, "0123456789abcdef") != "" {
			t.Errorf("Expected lower-case hex id, got %q", sess.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", rules)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", rules)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("whitespace in ID", func(t *testing.T) {
		_, err := manager.Create("bad id", rules)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("nil rules use defaults", func(t *testing.T) {
		sess, err := manager.Create("", nil)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if sess.Rules.Name != "classic" {
			t.Errorf("Expected classic rules, got %s", sess.Rules.Name)
		}
	})
}

func TestManager_GeneratedIDsAreUnique(t *testing.T) {
	manager := NewManager()
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		sess, err := manager.Create("", createTestRules())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if seen[sess.ID] {
			t.Fatalf("Duplicate id %s", sess.ID)
		}
		seen[sess.ID] = true
	}
	if manager.Count() != 200 {
		t.Errorf("Expected 200 sessions, got %d", manager.Count())
	}
}

func TestManager_SeededSessionsAgree(t *testing.T) {
	manager := NewManager()
	rules := createTestRules()
	rules.Seed = 2048

	a, _ := manager.Create("", rules)
	b, _ := manager.Create("", rules)
	if a.Grid != b.Grid {
		t.Errorf("Expected identical openings for a seeded preset:\n%v\n---\n%v", a.Grid, b.Grid)
	}

	// Each session draws from its own source.
	ga := engine.SpawnTile(a.Grid, a.Rand)
	gb := engine.SpawnTile(b.Grid, b.Rand)
	if ga != gb {
		t.Errorf("Expected identical spawns:\n%v\n---\n%v", ga, gb)
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("get-test", createTestRules())

	t.Run("get existing session", func(t *testing.T) {
		sess, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if sess != created {
			t.Error("Expected the created session")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		sess, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if sess.ID != created.ID {
			t.Errorf("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	rules := createTestRules()

	first, err := manager.GetOrCreate("new-session", rules)
	if err != nil {
		t.Fatalf("Failed to get or create session: %v", err)
	}
	second, err := manager.GetOrCreate("NEW-SESSION", rules)
	if err != nil {
		t.Fatalf("Failed to get existing session: %v", err)
	}
	if first != second {
		t.Error("Expected the existing session to be returned")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	manager.Create("delete-test", createTestRules())

	if err := manager.Delete("DELETE-TEST"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("delete-test"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected session to be deleted")
	}
	if err := manager.Delete("delete-test"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	if len(manager.List()) != 0 {
		t.Error("Expected empty list")
	}

	for _, id := range []string{"one", "two", "three"} {
		manager.Create(id, createTestRules())
	}
	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 sessions, got %d", got)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	sess, _ := manager.Create("access-test", createTestRules())
	before := sess.LastAccessedAt

	time.Sleep(5 * time.Millisecond)
	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !sess.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to move forward")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	stale, _ := manager.Create("stale", createTestRules())
	manager.Create("fresh", createTestRules())

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, err := manager.Get("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected stale session to be removed")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Error("Expected fresh session to remain")
	}
}

func TestManager_RunCleanup(t *testing.T) {
	manager := NewManager()
	stale, _ := manager.Create("stale", createTestRules())
	stale.LastAccessedAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, time.Millisecond, time.Minute)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done

	if manager.Count() != 0 {
		t.Errorf("Expected cleanup to remove the stale session, %d left", manager.Count())
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	rules := createTestRules()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := manager.Create("", rules)
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			if _, err := manager.Get(strings.ToUpper(sess.ID)); err != nil {
				t.Errorf("Get failed: %v", err)
			}
			manager.UpdateLastAccessed(sess.ID)
		}()
	}
	wg.Wait()

	if manager.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", manager.Count())
	}
}
