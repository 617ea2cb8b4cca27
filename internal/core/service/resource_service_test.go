package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// stubResourceAPI records the last call and returns canned JSON.
type stubResourceAPI struct {
	lastToken    string
	lastID       string
	lastUserForm ports.UserForm
	updateUserFn func(ctx context.Context, token, id string, form ports.UserForm) (json.RawMessage, error)
}

func (s *stubResourceAPI) passthrough(token string) (json.RawMessage, error) {
	s.lastToken = token
	return json.RawMessage(`[]`), nil
}

func (s *stubResourceAPI) ListChildren(_ context.Context, token string) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) CreateChild(_ context.Context, token string, _ ports.ChildForm) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) UpdateChild(_ context.Context, token, id string, _ ports.ChildForm) (json.RawMessage, error) {
	s.lastID = id
	return s.passthrough(token)
}

func (s *stubResourceAPI) DeleteChild(_ context.Context, token, id string) error {
	s.lastToken, s.lastID = token, id
	return nil
}

func (s *stubResourceAPI) ListStaff(_ context.Context, token string) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) CreateStaff(_ context.Context, token string, _ ports.StaffForm) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) UpdateStaff(_ context.Context, token, id string, _ ports.StaffForm) (json.RawMessage, error) {
	s.lastID = id
	return s.passthrough(token)
}

func (s *stubResourceAPI) DeleteStaff(_ context.Context, token, id string) error {
	s.lastToken, s.lastID = token, id
	return nil
}

func (s *stubResourceAPI) ListUsers(_ context.Context, token string) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) CreateUser(_ context.Context, token string, _ ports.UserForm) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) UpdateUser(ctx context.Context, token, id string, form ports.UserForm) (json.RawMessage, error) {
	s.lastToken, s.lastID, s.lastUserForm = token, id, form
	if s.updateUserFn != nil {
		return s.updateUserFn(ctx, token, id, form)
	}
	return json.RawMessage(`{}`), nil
}

func (s *stubResourceAPI) DeleteUser(_ context.Context, token, id string) error {
	s.lastToken, s.lastID = token, id
	return nil
}

func (s *stubResourceAPI) ListDonations(_ context.Context, token string) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) DonationsReport(_ context.Context, token, _ string) (json.RawMessage, error) {
	return s.passthrough(token)
}

func (s *stubResourceAPI) DashboardStats(_ context.Context, token string) (json.RawMessage, error) {
	return s.passthrough(token)
}

func TestResourceService_PassesBearerTokenThrough(t *testing.T) {
	api := &stubResourceAPI{}
	svc := NewResourceService(api, newStubSessionStore(), zerolog.Nop())

	if _, err := svc.ListChildren(context.Background(), "tok-1"); err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if api.lastToken != "tok-1" {
		t.Fatalf("token not forwarded, got %q", api.lastToken)
	}
}

func TestResourceService_UpdateProfile_MutatesSnapshotInPlace(t *testing.T) {
	api := &stubResourceAPI{}
	sessions := newStubSessionStore()
	svc := NewResourceService(api, sessions, zerolog.Nop())

	seed := &domain.Session{
		ID:    "sid-1",
		Token: "tok-1",
		Identity: domain.Identity{
			ID: "u1", Name: "Old Name", Email: "old@b.com", Role: domain.RoleAdmin, Image: "pic.png",
		},
	}
	if err := sessions.Write(context.Background(), seed); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	identity, err := svc.UpdateProfile(context.Background(), "sid-1", ports.ProfileForm{Name: "New Name", Email: "new@b.com"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if identity.Name != "New Name" || identity.Email != "new@b.com" {
		t.Fatalf("identity not updated: %+v", identity)
	}

	// The upstream edit targets the account's own id with the own token.
	if api.lastID != "u1" || api.lastToken != "tok-1" {
		t.Fatalf("upstream edit used wrong target: id=%q token=%q", api.lastID, api.lastToken)
	}
	// Role never travels on a profile edit.
	if api.lastUserForm.Role != "" {
		t.Fatalf("role must not be sent on a profile edit, got %q", api.lastUserForm.Role)
	}

	stored, err := sessions.Read(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("read back session: %v", err)
	}
	if stored.Token != "tok-1" {
		t.Fatalf("token must survive a profile edit, got %q", stored.Token)
	}
	if stored.Identity.Role != domain.RoleAdmin {
		t.Fatalf("role must survive a profile edit, got %q", stored.Identity.Role)
	}
	if stored.Identity.Name != "New Name" || stored.Identity.Email != "new@b.com" {
		t.Fatalf("snapshot not refreshed: %+v", stored.Identity)
	}
}

func TestResourceService_UpdateProfile_Validation(t *testing.T) {
	svc := NewResourceService(&stubResourceAPI{}, newStubSessionStore(), zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), "sid-1", ports.ProfileForm{Name: "", Email: "x@b.com"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestResourceService_UpdateProfile_NoSession(t *testing.T) {
	svc := NewResourceService(&stubResourceAPI{}, newStubSessionStore(), zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), "ghost", ports.ProfileForm{Name: "N", Email: "e@b.com"})
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestResourceService_UpdateProfile_UpstreamFailureLeavesSnapshot(t *testing.T) {
	api := &stubResourceAPI{
		updateUserFn: func(context.Context, string, string, ports.UserForm) (json.RawMessage, error) {
			return nil, &domain.UpstreamError{Status: 500, Message: "update failed"}
		},
	}
	sessions := newStubSessionStore()
	svc := NewResourceService(api, sessions, zerolog.Nop())

	seed := &domain.Session{ID: "sid-1", Token: "tok", Identity: domain.Identity{ID: "u1", Name: "Old", Email: "old@b.com", Role: domain.RoleStaff}}
	_ = sessions.Write(context.Background(), seed)

	if _, err := svc.UpdateProfile(context.Background(), "sid-1", ports.ProfileForm{Name: "New", Email: "new@b.com"}); err == nil {
		t.Fatalf("expected upstream failure")
	}
	stored, _ := sessions.Read(context.Background(), "sid-1")
	if stored.Identity.Name != "Old" {
		t.Fatalf("snapshot must not change when upstream rejects the edit")
	}
}
