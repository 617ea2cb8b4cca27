package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orohange/console-gateway/internal/core/domain"
)

func TestSessionStore_WriteReadClear(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	if _, err := store.Read(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	sess := &domain.Session{
		ID:       "sid-1",
		Token:    "tok",
		Identity: domain.Identity{ID: "u1", Name: "Ada", Email: "a@b.com", Role: domain.RoleAdmin},
	}
	if err := store.Write(ctx, sess); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	// Token and identity travel together.
	if got.Token != "tok" || got.Identity.Email != "a@b.com" || got.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", got)
	}

	// Mutating the returned copy must not affect the store.
	got.Identity.Name = "changed"
	again, _ := store.Read(ctx, "sid-1")
	if again.Identity.Name != "Ada" {
		t.Fatalf("store must hand out copies, got %q", again.Identity.Name)
	}

	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Read(ctx, "sid-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session must be gone after Clear, got %v", err)
	}
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("repeat Clear must succeed: %v", err)
	}
}

func TestAttemptStore_AuthRoundTrip(t *testing.T) {
	store := NewAttemptStore(time.Minute)
	ctx := context.Background()

	if _, err := store.LoadAuth(ctx, "a@b.com"); !errors.Is(err, domain.ErrNoAttempt) {
		t.Fatalf("expected ErrNoAttempt, got %v", err)
	}

	attempt := &domain.AuthAttempt{
		Email:             "a@b.com",
		Phase:             domain.PhaseVerify,
		SealedCredentials: []byte("sealed"),
		CreatedAt:         time.Now().UTC(),
	}
	if err := store.SaveAuth(ctx, attempt); err != nil {
		t.Fatalf("SaveAuth failed: %v", err)
	}

	got, err := store.LoadAuth(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("LoadAuth failed: %v", err)
	}
	if got.Phase != domain.PhaseVerify || string(got.SealedCredentials) != "sealed" {
		t.Fatalf("unexpected attempt: %+v", got)
	}

	if err := store.DeleteAuth(ctx, "a@b.com"); err != nil {
		t.Fatalf("DeleteAuth failed: %v", err)
	}
	if _, err := store.LoadAuth(ctx, "a@b.com"); !errors.Is(err, domain.ErrNoAttempt) {
		t.Fatalf("attempt must be gone, got %v", err)
	}
}

func TestAttemptStore_Expiry(t *testing.T) {
	store := NewAttemptStore(time.Minute)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	attempt := &domain.AuthAttempt{Email: "a@b.com", Phase: domain.PhaseVerify, CreatedAt: current}
	if err := store.SaveAuth(ctx, attempt); err != nil {
		t.Fatalf("SaveAuth failed: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := store.LoadAuth(ctx, "a@b.com"); !errors.Is(err, domain.ErrNoAttempt) {
		t.Fatalf("expired attempt must read as absent, got %v", err)
	}
}

func TestAttemptStore_ResetRoundTrip(t *testing.T) {
	store := NewAttemptStore(time.Minute)
	ctx := context.Background()

	attempt := &domain.ResetAttempt{Email: "a@b.com", Phase: domain.PhaseReset, CreatedAt: time.Now().UTC()}
	if err := store.SaveReset(ctx, attempt); err != nil {
		t.Fatalf("SaveReset failed: %v", err)
	}
	got, err := store.LoadReset(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("LoadReset failed: %v", err)
	}
	if got.Phase != domain.PhaseReset {
		t.Fatalf("unexpected phase: %s", got.Phase)
	}
	if err := store.DeleteReset(ctx, "a@b.com"); err != nil {
		t.Fatalf("DeleteReset failed: %v", err)
	}
	if _, err := store.LoadReset(ctx, "a@b.com"); !errors.Is(err, domain.ErrNoAttempt) {
		t.Fatalf("reset attempt must be gone, got %v", err)
	}
}
