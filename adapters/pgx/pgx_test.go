package pgx

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lajom/gatekeep/core"
)

// newTestStore connects to the database named by TEST_DATABASE_URL and
// starts from an empty users table. The suite is skipped when the
// variable is unset so unit runs need no Postgres.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := New(pool)
	require.NoError(t, store.EnsureSchema(ctx))

	_, err = pool.Exec(ctx, "TRUNCATE users")
	require.NoError(t, err)

	return store
}

func TestStore_AddAndFindUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.AddUser(ctx, "a@x.com", []byte("hashed"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Nil(t, user.SessionID)
	assert.Nil(t, user.ResetToken)

	byEmail, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestStore_AddUserDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddUser(ctx, "a@x.com", []byte("hashed"))
	require.NoError(t, err)

	_, err = store.AddUser(ctx, "a@x.com", []byte("other"))
	assert.ErrorIs(t, err, core.ErrUserExists)
	assert.Contains(t, err.Error(), "a@x.com")
}

func TestStore_FindAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for name, find := range map[string]func() (*core.User, error){
		"by email":       func() (*core.User, error) { return store.FindByEmail(ctx, "nouser@x.com") },
		"by id":          func() (*core.User, error) { return store.FindByID(ctx, "missing") },
		"by session id":  func() (*core.User, error) { return store.FindBySessionID(ctx, "missing") },
		"empty session":  func() (*core.User, error) { return store.FindBySessionID(ctx, "") },
		"by reset token": func() (*core.User, error) { return store.FindByResetToken(ctx, "missing") },
		"empty token":    func() (*core.User, error) { return store.FindByResetToken(ctx, "") },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := find()
			assert.ErrorIs(t, err, core.ErrUserNotFound)
		})
	}
}

func TestStore_UpdateUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.AddUser(ctx, "a@x.com", []byte("hashed"))
	require.NoError(t, err)

	sessionID := "sess-1"
	require.NoError(t, store.UpdateUser(ctx, user.ID, core.UserUpdate{SessionID: &sessionID}))

	bySession, err := store.FindBySessionID(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, bySession.ID)

	require.NoError(t, store.UpdateUser(ctx, user.ID, core.UserUpdate{ClearSessionID: true}))
	_, err = store.FindBySessionID(ctx, sessionID)
	assert.ErrorIs(t, err, core.ErrUserNotFound)

	token := "reset-1"
	require.NoError(t, store.UpdateUser(ctx, user.ID, core.UserUpdate{ResetToken: &token}))
	require.NoError(t, store.UpdateUser(ctx, user.ID, core.UserUpdate{
		HashedPassword:  []byte("rehashed"),
		ClearResetToken: true,
	}))

	updated, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("rehashed"), updated.HashedPassword)
	assert.Nil(t, updated.ResetToken)
	assert.True(t, updated.UpdatedAt.After(user.UpdatedAt) || updated.UpdatedAt.Equal(user.UpdatedAt))
}

func TestStore_UpdateUserEdgeCases(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateUser(ctx, "missing", core.UserUpdate{ClearSessionID: true})
	assert.True(t, errors.Is(err, core.ErrUserNotFound))

	// A zero update is a no-op, even for an unknown user.
	assert.NoError(t, store.UpdateUser(ctx, "missing", core.UserUpdate{}))
}
