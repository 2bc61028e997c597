// Package pgx provides a PostgreSQL-backed identity store built on a
// pgxpool connection pool. The pool is caller-owned; the store never
// closes it.
package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lajom/gatekeep/core"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ core.IdentityStore = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the users table if it does not exist. Intended
// for examples and tests; production deployments should run migrations
// out of band.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
	id              text PRIMARY KEY,
	email           text NOT NULL UNIQUE,
	hashed_password bytea NOT NULL,
	session_id      text,
	reset_token     text,
	created_at      timestamptz NOT NULL DEFAULT now(),
	updated_at      timestamptz NOT NULL DEFAULT now()
)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure users schema: %w", err)
	}
	return nil
}
