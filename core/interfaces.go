package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORT (Identity records)
// ============================================

// IdentityStore is the boundary to the persistent user record store.
// Lookup misses are reported as ErrUserNotFound; AddUser reports a
// duplicate email as ErrUserExists. The store owns id assignment and
// email uniqueness.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindBySessionID(ctx context.Context, sessionID string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	AddUser(ctx context.Context, email string, hashedPassword []byte) (*User, error)
	UpdateUser(ctx context.Context, userID string, update UserUpdate) error
}

// ============================================
// SESSION PORTS
// ============================================

// SessionRegistry maps opaque session identifiers to user ids. Sessions
// have exactly three lifecycle points: absent, active, destroyed (absent
// again). Implementations must be safe for concurrent use.
type SessionRegistry interface {
	// Create records a fresh session for userID and returns its id.
	// Returns "" when userID is empty or blank.
	Create(ctx context.Context, userID string) string

	// Resolve returns the user id a session belongs to. Pure lookup,
	// no side effect; ok is false for blank or unknown ids.
	Resolve(ctx context.Context, sessionID string) (userID string, ok bool)

	// Destroy removes a session. Returns false when the session is
	// unknown; destroying twice reports false, never an error.
	Destroy(ctx context.Context, sessionID string) bool

	// DestroyUser removes every session belonging to userID and
	// returns how many were removed.
	DestroyUser(ctx context.Context, userID string) int
}

// SessionManager issues, resolves, and revokes sessions for user
// records. Two interchangeable designs implement it: one keeps a
// standalone registry, the other persists the session id on the user
// record itself. Callers pick a design at construction time.
type SessionManager interface {
	// Issue creates a fresh opaque session id for the user.
	Issue(ctx context.Context, user *User) (string, error)

	// Resolve returns the user owning sessionID, or ok=false when the
	// id is blank, unknown, or the user no longer exists.
	Resolve(ctx context.Context, sessionID string) (*User, bool)

	// Destroy revokes the user's sessions. It reports nothing: store
	// failures are swallowed by contract.
	Destroy(ctx context.Context, userID string)
}
