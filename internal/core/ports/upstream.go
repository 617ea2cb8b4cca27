package ports

import (
	"context"
	"encoding/json"
)

// FileUpload is an uploaded file forwarded verbatim to the upstream API.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpstreamUser is the account payload returned by the upstream verify call.
// Role stays a raw string here; the service collapses it onto the closed
// enumeration.
type UpstreamUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

// VerifyResult is the upstream response to a successful OTP verification.
type VerifyResult struct {
	Token string       `json:"token"`
	User  UpstreamUser `json:"user"`
}

// RegisterForm mirrors the multipart body of POST /api/auth/register.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Image    *FileUpload
}

// AuthAPI is the slice of the upstream orphanage API that drives sign-in,
// registration and password reset. String results carry the upstream
// confirmation message.
type AuthAPI interface {
	SendOTP(ctx context.Context, email, password string) (string, error)
	VerifyOTP(ctx context.Context, email, password, otp string) (*VerifyResult, error)
	Register(ctx context.Context, form RegisterForm) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
}

// ChildForm carries the child-management modal's fields. Image is optional
// on edit.
type ChildForm struct {
	Name              string
	Gender            string
	DateOfBirth       string
	DateOfAdmission   string
	Vaccinations      string
	Allergies         string
	PrincipalName     string
	PrincipalPhone    string
	PrincipalLocation string
	Image             *FileUpload
}

// StaffForm carries the staff-management modal's fields. Password is set
// only on create; Salary stays a string because it travels as a multipart
// field.
type StaffForm struct {
	Name      string
	StaffRole string
	Phone     string
	Email     string
	Salary    string
	Password  string
	Image     *FileUpload
}

// UserForm carries the user-management modal's fields. Role is accepted
// from admin user management only; profile edits never send it.
type UserForm struct {
	Name     string
	Email    string
	Password string
	Role     string
	Image    *FileUpload
}

// ResourceAPI is the CRUD surface the console screens consume. The gateway
// attaches the bearer token and forwards forms, but passes resource
// payloads through as raw JSON without reinterpreting them.
type ResourceAPI interface {
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
}
