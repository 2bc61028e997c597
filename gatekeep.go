// Package gatekeep is a session- and credential-based auth toolkit:
// password hashing, session issuance and revocation, and one-shot
// password-reset tokens, behind pluggable storage and session ports.
package gatekeep

import (
	"log/slog"

	"github.com/lajom/gatekeep/core"
	"github.com/lajom/gatekeep/pkg/crypto"
	"github.com/lajom/gatekeep/services"
)

// interfaces
type (
	IdentityStore   = core.IdentityStore
	SessionRegistry = core.SessionRegistry
	SessionManager  = core.SessionManager

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	User       = core.User
	UserUpdate = core.UserUpdate

	Service = services.AuthService
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrResetTokenNotFound = core.ErrResetTokenNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var ErrStoreRequired = core.ErrStoreRequired

// Constructors & helpers (convenience re-exports)
var (
	NewBcrypt = crypto.NewBcrypt
	NewArgon2 = crypto.NewArgon2

	NewMemoryRegistry   = services.NewMemoryRegistry
	NewRegistrySessions = services.NewRegistrySessions
	NewRecordSessions   = services.NewRecordSessions
)

// Config assembles a Service. Store is required; everything else has a
// working default.
type Config struct {
	// Store persists user records. Required.
	Store IdentityStore

	// Hasher verifies and derives password hashes. Defaults to bcrypt.
	Hasher PasswordHandler

	// Registry, when set, keeps sessions in an external registry
	// keyed by session id. When nil, sessions live on the user record
	// itself.
	Registry SessionRegistry

	// Sessions overrides the session strategy entirely; it takes
	// precedence over Registry.
	Sessions SessionManager

	Logger *slog.Logger
}

func New(config Config) (*Service, error) {
	if config.Store == nil {
		return nil, ErrStoreRequired
	}

	hasher := config.Hasher
	if hasher == nil {
		hasher = crypto.NewBcrypt()
	}

	sessions := config.Sessions
	if sessions == nil {
		if config.Registry != nil {
			sessions = services.NewRegistrySessions(config.Registry, config.Store)
		} else {
			sessions = services.NewRecordSessions(config.Store, config.Logger)
		}
	}

	return services.NewAuthService(config.Store, hasher, sessions, config.Logger), nil
}
