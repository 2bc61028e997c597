package services

import (
	"context"
	"strings"
	"sync"

	"github.com/lajom/gatekeep/core"
	"github.com/lajom/gatekeep/pkg/crypto"
)

// MemoryRegistry is a process-local session registry: an in-memory map
// from session id to user id guarded by a RWMutex. State lives for the
// lifetime of the process and is never persisted.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]string // session id -> user id
}

var _ core.SessionRegistry = (*MemoryRegistry)(nil)

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]string),
	}
}

// Create records a fresh session for userID. Multiple sessions may be
// active for the same user concurrently.
func (r *MemoryRegistry) Create(_ context.Context, userID string) string {
	if strings.TrimSpace(userID) == "" {
		return ""
	}

	sessionID := crypto.NewToken()

	r.mu.Lock()
	r.sessions[sessionID] = userID
	r.mu.Unlock()

	return sessionID
}

// Resolve is a pure lookup with no side effect.
func (r *MemoryRegistry) Resolve(_ context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.sessions[sessionID]
	return userID, ok
}

// Destroy removes the session; false when it was never there or already
// destroyed.
func (r *MemoryRegistry) Destroy(_ context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return false
	}
	delete(r.sessions, sessionID)
	return true
}

// DestroyUser removes every session belonging to userID.
func (r *MemoryRegistry) DestroyUser(_ context.Context, userID string) int {
	if userID == "" {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for id, uid := range r.sessions {
		if uid == userID {
			delete(r.sessions, id)
			count++
		}
	}
	return count
}

// Len reports the number of active sessions.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
