package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lajom/gatekeep/core"
	"github.com/lajom/gatekeep/pkg/crypto"
)

// AuthService orchestrates registration, credential validation, the
// session lifecycle, and the password-reset token lifecycle on top of
// an identity store, a password hasher, and a session manager.
//
// The operations deliberately report failure in different shapes:
// lookups that model "absent" answer with a bool, credential checks
// answer with a uniform false, registration and reset issuance raise
// sentinel errors, and session destruction reports nothing at all.
type AuthService struct {
	store    core.IdentityStore
	hasher   crypto.PasswordHandler
	sessions core.SessionManager
	logger   *slog.Logger
}

func NewAuthService(store core.IdentityStore, hasher crypto.PasswordHandler, sessions core.SessionManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthService{
		store:    store,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new user with the given email and a freshly hashed
// password. Returns core.ErrUserExists (wrapped with the email) when the
// address is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (*core.User, error) {
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrUserExists, email)
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.AddUser(ctx, email, hashed)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.DebugContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// ValidLogin reports whether email and password name a valid credential
// pair. The answer is a uniform false for an unknown email, a wrong
// password, and a store failure alike; callers learn nothing about
// which it was.
func (s *AuthService) ValidLogin(ctx context.Context, email, password string) bool {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return false
	}
	return s.hasher.Verify(password, user.HashedPassword)
}

// CreateSession issues a fresh session for the user registered under
// email. ok is false when the email is unknown or issuance failed.
func (s *AuthService) CreateSession(ctx context.Context, email string) (string, bool) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", false
	}

	sessionID, err := s.sessions.Issue(ctx, user)
	if err != nil {
		s.logger.DebugContext(ctx, "session issuance failed", "user_id", user.ID, "err", err)
		return "", false
	}
	return sessionID, true
}

// ResolveSession returns the user owning sessionID; ok is false for a
// blank, unknown, or already destroyed session.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (*core.User, bool) {
	if sessionID == "" {
		return nil, false
	}
	return s.sessions.Resolve(ctx, sessionID)
}

// DestroySession revokes the sessions of the user identified by userID.
// It reports nothing; failures are swallowed by the session manager.
func (s *AuthService) DestroySession(ctx context.Context, userID string) {
	s.sessions.Destroy(ctx, userID)
}

// IssueResetToken generates a fresh reset token for the user registered
// under email and persists it on the record, replacing any previous one.
func (s *AuthService) IssueResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return "", fmt.Errorf("%w: %s", core.ErrUserNotFound, email)
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	token := crypto.NewToken()
	if err := s.store.UpdateUser(ctx, user.ID, core.UserUpdate{ResetToken: &token}); err != nil {
		return "", fmt.Errorf("failed to persist reset token: %w", err)
	}
	return token, nil
}

// UpdatePassword sets a new password for the user holding resetToken
// and consumes the token in the same update; a second call with the
// same token fails with core.ErrResetTokenNotFound.
func (s *AuthService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return core.ErrResetTokenNotFound
	}

	user, err := s.store.FindByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return core.ErrResetTokenNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	update := core.UserUpdate{HashedPassword: hashed, ClearResetToken: true}
	if err := s.store.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.DebugContext(ctx, "password updated", "user_id", user.ID)
	return nil
}
