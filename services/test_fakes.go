package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lajom/gatekeep/core"
)

// FakeIdentityStore is a test-only fake implementing core.IdentityStore.
// It stores users in a map keyed by id and exposes error fields for
// behavior injection.
type FakeIdentityStore struct {
	mu     sync.RWMutex
	users  map[string]*core.User
	nextID int

	findErr   error
	addErr    error
	updateErr error
}

var _ core.IdentityStore = (*FakeIdentityStore)(nil)

func NewFakeIdentityStore() *FakeIdentityStore {
	return &FakeIdentityStore{
		users: make(map[string]*core.User),
	}
}

func (f *FakeIdentityStore) FindByEmail(_ context.Context, email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeIdentityStore) FindByID(_ context.Context, id string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeIdentityStore) FindBySessionID(_ context.Context, sessionID string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.SessionID != nil && *u.SessionID == sessionID {
			return cloneUser(u), nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeIdentityStore) FindByResetToken(_ context.Context, token string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeIdentityStore) AddUser(_ context.Context, email string, hashedPassword []byte) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return nil, f.addErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, core.ErrUserExists
		}
	}

	f.nextID++
	now := time.Now()
	user := &core.User{
		ID:             fmt.Sprintf("user-%d", f.nextID),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.users[user.ID] = user
	return cloneUser(user), nil
}

func (f *FakeIdentityStore) UpdateUser(_ context.Context, userID string, update core.UserUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[userID]
	if !ok {
		return core.ErrUserNotFound
	}

	if update.HashedPassword != nil {
		u.HashedPassword = update.HashedPassword
	}
	if update.SessionID != nil {
		u.SessionID = update.SessionID
	}
	if update.ClearSessionID {
		u.SessionID = nil
	}
	if update.ResetToken != nil {
		u.ResetToken = update.ResetToken
	}
	if update.ClearResetToken {
		u.ResetToken = nil
	}
	u.UpdatedAt = time.Now()
	return nil
}

// Test helper methods

func (f *FakeIdentityStore) SetFindError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findErr = err
}

func (f *FakeIdentityStore) SetAddError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addErr = err
}

func (f *FakeIdentityStore) SetUpdateError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateErr = err
}

// MustUser returns the stored record for userID, failing the invariant
// loudly when it is missing.
func (f *FakeIdentityStore) MustUser(userID string) *core.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[userID]
	if !ok {
		panic(fmt.Sprintf("fake store has no user %q", userID))
	}
	return cloneUser(u)
}

func cloneUser(u *core.User) *core.User {
	c := *u
	if u.SessionID != nil {
		sid := *u.SessionID
		c.SessionID = &sid
	}
	if u.ResetToken != nil {
		tok := *u.ResetToken
		c.ResetToken = &tok
	}
	c.HashedPassword = append([]byte(nil), u.HashedPassword...)
	return &c
}
