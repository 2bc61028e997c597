package services

import (
	"context"
	"log/slog"

	"github.com/lajom/gatekeep/core"
	"github.com/lajom/gatekeep/pkg/crypto"
)

// Two session designs implement core.SessionManager:
//
//   - RegistrySessions keeps a standalone registry of session id to
//     user id and never touches the user record. A user may hold any
//     number of concurrent sessions.
//   - RecordSessions persists the session id on the user record itself.
//     Issuing overwrites the previous id, so a user holds at most one
//     active session.
//
// Callers pick one at construction time; the auth service treats them
// interchangeably.

// Ensure both strategies implement SessionManager
var (
	_ core.SessionManager = (*RegistrySessions)(nil)
	_ core.SessionManager = (*RecordSessions)(nil)
)

type RegistrySessions struct {
	registry core.SessionRegistry
	store    core.IdentityStore
}

func NewRegistrySessions(registry core.SessionRegistry, store core.IdentityStore) *RegistrySessions {
	return &RegistrySessions{
		registry: registry,
		store:    store,
	}
}

func (s *RegistrySessions) Issue(ctx context.Context, user *core.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", core.ErrUserNotFound
	}

	sessionID := s.registry.Create(ctx, user.ID)
	if sessionID == "" {
		return "", core.ErrUserNotFound
	}
	return sessionID, nil
}

func (s *RegistrySessions) Resolve(ctx context.Context, sessionID string) (*core.User, bool) {
	userID, ok := s.registry.Resolve(ctx, sessionID)
	if !ok {
		return nil, false
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (s *RegistrySessions) Destroy(ctx context.Context, userID string) {
	s.registry.DestroyUser(ctx, userID)
}

type RecordSessions struct {
	store  core.IdentityStore
	logger *slog.Logger
}

func NewRecordSessions(store core.IdentityStore, logger *slog.Logger) *RecordSessions {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RecordSessions{
		store:  store,
		logger: logger,
	}
}

func (s *RecordSessions) Issue(ctx context.Context, user *core.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", core.ErrUserNotFound
	}

	sessionID := crypto.NewToken()
	err := s.store.UpdateUser(ctx, user.ID, core.UserUpdate{SessionID: &sessionID})
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *RecordSessions) Resolve(ctx context.Context, sessionID string) (*core.User, bool) {
	if sessionID == "" {
		return nil, false
	}

	user, err := s.store.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// Destroy clears the session id on the user record. Store failures are
// swallowed: revocation has no observable outcome by contract.
func (s *RecordSessions) Destroy(ctx context.Context, userID string) {
	err := s.store.UpdateUser(ctx, userID, core.UserUpdate{ClearSessionID: true})
	if err != nil {
		s.logger.DebugContext(ctx, "session destroy swallowed store error",
			"user_id", userID, "err", err)
	}
}
