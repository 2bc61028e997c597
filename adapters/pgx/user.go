package pgx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lajom/gatekeep/core"
	"github.com/lajom/gatekeep/pkg/crypto"
)

const userColumns = "id, email, hashed_password, session_id, reset_token, created_at, updated_at"

func (s *Store) findBy(ctx context.Context, column, value string) (*core.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = $1", userColumns, column)

	var user core.User
	err := s.pool.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.SessionID,
		&user.ResetToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by %s: %w", column, err)
	}
	return &user, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	return s.findBy(ctx, "email", email)
}

func (s *Store) FindByID(ctx context.Context, id string) (*core.User, error) {
	return s.findBy(ctx, "id", id)
}

func (s *Store) FindBySessionID(ctx context.Context, sessionID string) (*core.User, error) {
	if sessionID == "" {
		return nil, core.ErrUserNotFound
	}
	return s.findBy(ctx, "session_id", sessionID)
}

func (s *Store) FindByResetToken(ctx context.Context, token string) (*core.User, error) {
	if token == "" {
		return nil, core.ErrUserNotFound
	}
	return s.findBy(ctx, "reset_token", token)
}

// AddUser inserts a new user row. A unique violation on the email column
// maps to core.ErrUserExists.
func (s *Store) AddUser(ctx context.Context, email string, hashedPassword []byte) (*core.User, error) {
	id, err := crypto.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	const query = `
INSERT INTO users (id, email, hashed_password)
VALUES ($1, $2, $3)
RETURNING ` + userColumns

	var user core.User
	err = s.pool.QueryRow(ctx, query, id, email, hashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.SessionID,
		&user.ResetToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %s", core.ErrUserExists, email)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

// UpdateUser applies the non-zero parts of update to the user row.
// Returns core.ErrUserNotFound when no row matches userID.
func (s *Store) UpdateUser(ctx context.Context, userID string, update core.UserUpdate) error {
	if update.IsZero() {
		return nil
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if update.HashedPassword != nil {
		args = append(args, update.HashedPassword)
		sets = append(sets, fmt.Sprintf("hashed_password = $%d", len(args)))
	}
	switch {
	case update.SessionID != nil:
		args = append(args, *update.SessionID)
		sets = append(sets, fmt.Sprintf("session_id = $%d", len(args)))
	case update.ClearSessionID:
		sets = append(sets, "session_id = NULL")
	}
	switch {
	case update.ResetToken != nil:
		args = append(args, *update.ResetToken)
		sets = append(sets, fmt.Sprintf("reset_token = $%d", len(args)))
	case update.ClearResetToken:
		sets = append(sets, "reset_token = NULL")
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
