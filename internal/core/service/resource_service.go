package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// ResourceService fronts the upstream CRUD surface for the console screens.
// It attaches no policy of its own beyond what the guard already enforced;
// it logs mutations and keeps the session's identity snapshot in step with
// profile edits.
type ResourceService struct {
	api      ports.ResourceAPI
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewResourceService(api ports.ResourceAPI, sessions ports.SessionStore, logger zerolog.Logger) *ResourceService {
	return &ResourceService{api: api, sessions: sessions, logger: logger}
}

func (s *ResourceService) ListChildren(ctx context.Context, token string) (json.RawMessage, error) {
	return s.api.ListChildren(ctx, token)
}

func (s *ResourceService) CreateChild(ctx context.Context, token string, form ports.ChildForm) (json.RawMessage, error) {
	out, err := s.api.CreateChild(ctx, token, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("name", form.Name).Msg("child record created")
	return out, nil
}

func (s *ResourceService) UpdateChild(ctx context.Context, token, id string, form ports.ChildForm) (json.RawMessage, error) {
	out, err := s.api.UpdateChild(ctx, token, id, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", id).Msg("child record updated")
	return out, nil
}

func (s *ResourceService) DeleteChild(ctx context.Context, token, id string) error {
	if err := s.api.DeleteChild(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("child record deleted")
	return nil
}

func (s *ResourceService) ListStaff(ctx context.Context, token string) (json.RawMessage, error) {
	return s.api.ListStaff(ctx, token)
}

func (s *ResourceService) CreateStaff(ctx context.Context, token string, form ports.StaffForm) (json.RawMessage, error) {
	out, err := s.api.CreateStaff(ctx, token, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", form.Email).Msg("staff record created")
	return out, nil
}

func (s *ResourceService) UpdateStaff(ctx context.Context, token, id string, form ports.StaffForm) (json.RawMessage, error) {
	out, err := s.api.UpdateStaff(ctx, token, id, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", id).Msg("staff record updated")
	return out, nil
}

func (s *ResourceService) DeleteStaff(ctx context.Context, token, id string) error {
	if err := s.api.DeleteStaff(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("staff record deleted")
	return nil
}

func (s *ResourceService) ListUsers(ctx context.Context, token string) (json.RawMessage, error) {
	return s.api.ListUsers(ctx, token)
}

func (s *ResourceService) CreateUser(ctx context.Context, token string, form ports.UserForm) (json.RawMessage, error) {
	out, err := s.api.CreateUser(ctx, token, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", form.Email).Str("role", form.Role).Msg("user account created")
	return out, nil
}

func (s *ResourceService) UpdateUser(ctx context.Context, token, id string, form ports.UserForm) (json.RawMessage, error) {
	out, err := s.api.UpdateUser(ctx, token, id, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", id).Msg("user account updated")
	return out, nil
}

func (s *ResourceService) DeleteUser(ctx context.Context, token, id string) error {
	if err := s.api.DeleteUser(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("user account deleted")
	return nil
}

func (s *ResourceService) ListDonations(ctx context.Context, token string) (json.RawMessage, error) {
	return s.api.ListDonations(ctx, token)
}

func (s *ResourceService) DonationsReport(ctx context.Context, token, dateRange string) (json.RawMessage, error) {
	return s.api.DonationsReport(ctx, token, dateRange)
}

func (s *ResourceService) DashboardStats(ctx context.Context, token string) (json.RawMessage, error) {
	return s.api.DashboardStats(ctx, token)
}

// UpdateProfile forwards the edit upstream and then mutates the stored
// identity snapshot in place. Name and email follow the form; role and
// token never change here. The stored image name is left as-is: upstream
// assigns uploaded filenames and the snapshot catches up on next login.
func (s *ResourceService) UpdateProfile(ctx context.Context, sid string, form ports.ProfileForm) (*domain.Identity, error) {
	if form.Name == "" || form.Email == "" {
		return nil, &domain.ValidationError{Message: "name and email are required"}
	}

	session, err := s.sessions.Read(ctx, sid)
	if err != nil {
		return nil, err
	}

	userForm := ports.UserForm{Name: form.Name, Email: form.Email, Image: form.Image}
	if _, err := s.api.UpdateUser(ctx, session.Token, session.Identity.ID, userForm); err != nil {
		return nil, err
	}

	session.Identity.Name = form.Name
	session.Identity.Email = form.Email
	if err := s.sessions.Write(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sid", sid).Msg("profile updated")
	return &session.Identity, nil
}
