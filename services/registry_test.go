package services

import (
	"context"
	"sync"
	"testing"
)

// Requirement: Create returns a fresh, previously-unseen session id for a
// valid user id, and an empty sentinel for a blank one.
func TestMemoryRegistry_Create(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		want   bool // want a session id
	}{
		{"valid user id", "user-1", true},
		{"empty user id", "", false},
		{"blank user id", "   ", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := NewMemoryRegistry()
			ctx := context.Background()

			sessionID := registry.Create(ctx, test.userID)

			if test.want && sessionID == "" {
				t.Fatal("Create() should return a session id")
			}
			if !test.want {
				if sessionID != "" {
					t.Fatalf("Create() = %q, want empty", sessionID)
				}
				return
			}

			userID, ok := registry.Resolve(ctx, sessionID)
			if !ok || userID != test.userID {
				t.Errorf("Resolve() = (%q, %v), want (%q, true)", userID, ok, test.userID)
			}
		})
	}
}

// Requirement: session ids never collide and a user may hold several
// sessions at once.
func TestMemoryRegistry_ConcurrentSessionsPerUser(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := registry.Create(ctx, "user-1")
		if id == "" {
			t.Fatal("Create() should succeed")
		}
		if seen[id] {
			t.Fatalf("Create() produced duplicate session id %q", id)
		}
		seen[id] = true
	}

	if got := registry.Len(); got != 100 {
		t.Errorf("Len() = %d, want 100", got)
	}
}

func TestMemoryRegistry_Resolve(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	if _, ok := registry.Resolve(ctx, ""); ok {
		t.Error("Resolve(\"\") should be absent")
	}
	if _, ok := registry.Resolve(ctx, "never-issued"); ok {
		t.Error("Resolve() of an unknown id should be absent")
	}

	sessionID := registry.Create(ctx, "user-1")
	for i := 0; i < 3; i++ {
		// Pure lookup: repeated resolves keep answering
		userID, ok := registry.Resolve(ctx, sessionID)
		if !ok || userID != "user-1" {
			t.Fatalf("Resolve() = (%q, %v), want (user-1, true)", userID, ok)
		}
	}
}

// Requirement: Destroy is idempotent in effect; the second call reports
// false, never an error.
func TestMemoryRegistry_Destroy(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	if registry.Destroy(ctx, "unknown") {
		t.Error("Destroy() of an unknown id should report false")
	}
	if registry.Destroy(ctx, "") {
		t.Error("Destroy(\"\") should report false")
	}

	sessionID := registry.Create(ctx, "user-1")
	if !registry.Destroy(ctx, sessionID) {
		t.Error("Destroy() of an active session should report true")
	}
	if _, ok := registry.Resolve(ctx, sessionID); ok {
		t.Error("Resolve() after Destroy() should be absent")
	}
	if registry.Destroy(ctx, sessionID) {
		t.Error("second Destroy() should report false")
	}
}

func TestMemoryRegistry_DestroyUser(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	ids := []string{
		registry.Create(ctx, "user-1"),
		registry.Create(ctx, "user-1"),
		registry.Create(ctx, "user-2"),
	}

	if got := registry.DestroyUser(ctx, "user-1"); got != 2 {
		t.Errorf("DestroyUser() = %d, want 2", got)
	}
	if _, ok := registry.Resolve(ctx, ids[0]); ok {
		t.Error("user-1 sessions should be gone")
	}
	if _, ok := registry.Resolve(ctx, ids[2]); !ok {
		t.Error("user-2 session should survive")
	}
	if got := registry.DestroyUser(ctx, "user-1"); got != 0 {
		t.Errorf("second DestroyUser() = %d, want 0", got)
	}
}

// Requirement: every created session is resolvable until destroyed, under
// concurrent create/resolve/destroy from multiple goroutines.
func TestMemoryRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewMemoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := registry.Create(ctx, "user-1")
				if id == "" {
					t.Error("Create() should succeed under contention")
					return
				}
				if _, ok := registry.Resolve(ctx, id); !ok {
					t.Error("created session should resolve until destroyed")
					return
				}
				if !registry.Destroy(ctx, id) {
					t.Error("Destroy() of own session should report true")
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := registry.Len(); got != 0 {
		t.Errorf("Len() = %d after all sessions destroyed, want 0", got)
	}
}
