package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	contractx "github.com/bankbot/bankbot/agent/contract"
)

func TestGetOrCreateIsStablePerID(t *testing.T) {
	t.Parallel()

	store := NewStore()
	a := store.GetOrCreate("s1")
	b := store.GetOrCreate("s1")
	if a != b {
		t.Fatal("same id must resolve to the same session")
	}
	if store.GetOrCreate("s2") == a {
		t.Fatal("distinct ids must resolve to distinct sessions")
	}
}

func TestClearDropsSession(t *testing.T) {
	t.Parallel()

	store := NewStore()
	a := store.GetOrCreate("s1")
	a.mu.Lock()
	a.state = StateAuthenticated
	a.identity = "12345678901"
	a.mu.Unlock()

	store.Clear("s1")

	fresh := store.GetOrCreate("s1")
	if fresh == a {
		t.Fatal("cleared session must not be reused")
	}
	fresh.mu.Lock()
	defer fresh.mu.Unlock()
	if fresh.state != StateUnauthenticated || fresh.identity != "" {
		t.Fatalf("fresh session must start unauthenticated: %+v", fresh.state)
	}
}

// TestConcurrentSessionsAreIsolated runs several authenticated conversations
// in parallel, each with its own script length, and checks that no session
// ever sees another session's turns.
func TestConcurrentSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	rsv := &fakeResolver{reply: func(req contractx.ResolverRequest) string {
		return "echo:" + req.Text
	}}
	engine, store := newTestEngine(t, rsv, Config{})

	handle := func(id, text string) {
		if _, err := engine.HandleMessage(context.Background(), id, text); err != nil {
			t.Errorf("session %s: handle %q: %v", id, text, err)
		}
	}

	const sessions = 8
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", i)
			handle(id, "12345678901")
			handle(id, "abc123")
			for j := 0; j <= i; j++ {
				handle(id, fmt.Sprintf("msg-%d-%d", i, j))
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < sessions; i++ {
		id := fmt.Sprintf("sess-%d", i)
		sess := store.GetOrCreate(id)
		sess.mu.Lock()
		history := append([]contractx.Turn(nil), sess.history...)
		sess.mu.Unlock()

		want := 2 * (i + 1)
		if len(history) != want {
			t.Fatalf("session %s: expected %d turns, got %d", id, want, len(history))
		}
		for j := 0; j <= i; j++ {
			userTurn := history[2*j]
			assistantTurn := history[2*j+1]
			wantText := fmt.Sprintf("msg-%d-%d", i, j)
			if userTurn.Text != wantText {
				t.Fatalf("session %s leaked foreign turn: %q", id, userTurn.Text)
			}
			if assistantTurn.Text != "echo:"+wantText {
				t.Fatalf("session %s got foreign reply: %q", id, assistantTurn.Text)
			}
		}
	}
}
