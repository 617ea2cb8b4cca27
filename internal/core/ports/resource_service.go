package ports

import (
	"context"
	"encoding/json"

	"github.com/orohange/console-gateway/internal/core/domain"
)

// ProfileForm carries the fields a signed-in account may edit about itself.
// Role is deliberately absent: it is immutable through the console.
type ProfileForm struct {
	Name  string
	Email string
	Image *FileUpload
}

// ResourceService fronts the upstream CRUD surface for the console screens
// and owns the profile edit, which also refreshes the session's identity
// snapshot.
type ResourceService interface {
	ListChildren(ctx context.Context, token string) (json.RawMessage, error)
	CreateChild(ctx context.Context, token string, form ChildForm) (json.RawMessage, error)
	UpdateChild(ctx context.Context, token, id string, form ChildForm) (json.RawMessage, error)
	DeleteChild(ctx context.Context, token, id string) error

	ListStaff(ctx context.Context, token string) (json.RawMessage, error)
	CreateStaff(ctx context.Context, token string, form StaffForm) (json.RawMessage, error)
	UpdateStaff(ctx context.Context, token, id string, form StaffForm) (json.RawMessage, error)
	DeleteStaff(ctx context.Context, token, id string) error

	ListUsers(ctx context.Context, token string) (json.RawMessage, error)
	CreateUser(ctx context.Context, token string, form UserForm) (json.RawMessage, error)
	UpdateUser(ctx context.Context, token, id string, form UserForm) (json.RawMessage, error)
	DeleteUser(ctx context.Context, token, id string) error

	ListDonations(ctx context.Context, token string) (json.RawMessage, error)
	DonationsReport(ctx context.Context, token, dateRange string) (json.RawMessage, error)
	DashboardStats(ctx context.Context, token string) (json.RawMessage, error)

	UpdateProfile(ctx context.Context, sid string, form ProfileForm) (*domain.Identity, error)
}
