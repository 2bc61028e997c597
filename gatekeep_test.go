package gatekeep

import (
	"context"
	"errors"
	"testing"

	"github.com/lajom/gatekeep/pkg/crypto"
	"github.com/lajom/gatekeep/services"
)

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("New() error = %v, want ErrStoreRequired", err)
	}
}

func TestNew_DefaultsWork(t *testing.T) {
	store := services.NewFakeIdentityStore()

	service, err := New(Config{Store: store})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	user, err := service.Register(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if !service.ValidLogin(ctx, "a@x.com", "pw1") {
		t.Error("default hasher should verify the registered password")
	}

	// The default strategy keeps the session on the user record.
	sessionID, ok := service.CreateSession(ctx, "a@x.com")
	if !ok {
		t.Fatal("CreateSession() should succeed")
	}
	stored := store.MustUser(user.ID)
	if stored.SessionID == nil || *stored.SessionID != sessionID {
		t.Error("session id should be persisted on the user record")
	}
}

func TestNew_RegistrySelectsRegistryStrategy(t *testing.T) {
	store := services.NewFakeIdentityStore()

	service, err := New(Config{
		Store:    store,
		Hasher:   &crypto.Bcrypt{Cost: 4},
		Registry: NewMemoryRegistry(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	user, err := service.Register(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	sessionID, ok := service.CreateSession(ctx, "a@x.com")
	if !ok {
		t.Fatal("CreateSession() should succeed")
	}
	if stored := store.MustUser(user.ID); stored.SessionID != nil {
		t.Error("registry strategy must not write to the user record")
	}

	resolved, ok := service.ResolveSession(ctx, sessionID)
	if !ok || resolved.ID != user.ID {
		t.Errorf("ResolveSession() = (%v, %v), want user %s", resolved, ok, user.ID)
	}
}
