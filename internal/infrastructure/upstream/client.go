// Package upstream is the HTTP client for the orphanage API that owns all
// business logic and persistence. The gateway forwards requests, attaches
// bearer tokens and surfaces upstream messages; it never reinterprets
// resource payloads.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/orohange/console-gateway/internal/api/metrics"
	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client calls the upstream orphanage API. It implements ports.AuthAPI and
// ports.ResourceAPI.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// messageResponse is the {message} envelope most auth endpoints return.
type messageResponse struct {
	Message string `json:"message"`
}

// --- ports.AuthAPI ---

func (c *Client) SendOTP(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out messageResponse
	if err := c.postJSON(ctx, "send_otp", "/api/auth/send-otp", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, password, otp string) (*ports.VerifyResult, error) {
	body := map[string]string{"email": email, "password": password, "otp": otp}
	var out ports.VerifyResult
	if err := c.postJSON(ctx, "verify_otp", "/api/auth/verify-otp", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, form ports.RegisterForm) (string, error) {
	fields := map[string]string{
		"name":     form.Name,
		"email":    form.Email,
		"password": form.Password,
	}
	raw, err := c.sendMultipart(ctx, "register", http.MethodPost, "/api/auth/register", "", fields, form.Image)
	if err != nil {
		return "", err
	}
	var out messageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode register response: %w", err)
	}
	return out.Message, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	if err := c.postJSON(ctx, "forgot_password", "/api/auth/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	var out messageResponse
	if err := c.postJSON(ctx, "reset_password", "/api/auth/reset-password", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// --- ports.ResourceAPI ---

func (c *Client) ListChildren(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, "children", "/api/children", token)
}

func (c *Client) CreateChild(ctx context.Context, token string, form ports.ChildForm) (json.RawMessage, error) {
	return c.sendMultipart(ctx, "children", http.MethodPost, "/api/children", token, childFields(form), form.Image)
}

func (c *Client) UpdateChild(ctx context.Context, token, id string, form ports.ChildForm) (json.RawMessage, error) {
	return c.sendMultipart(ctx, "children", http.MethodPut, "/api/children/"+id, token, childFields(form), form.Image)
}

func (c *Client) DeleteChild(ctx context.Context, token, id string) error {
	return c.delete(ctx, "children", "/api/children/"+id, token)
}

func (c *Client) ListStaff(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, "staff", "/api/staff", token)
}

func (c *Client) CreateStaff(ctx context.Context, token string, form ports.StaffForm) (json.RawMessage, error) {
	return c.sendMultipart(ctx, "staff", http.MethodPost, "/api/staff", token, staffFields(form), form.Image)
}

func (c *Client) UpdateStaff(ctx context.Context, token, id string, form ports.StaffForm) (json.RawMessage, error) {
	return c.sendMultipart(ctx, "staff", http.MethodPut, "/api/staff/"+id, token, staffFields(form), form.Image)
}

func (c *Client) DeleteStaff(ctx context.Context, token, id string) error {
	return c.delete(ctx, "staff", "/api/staff/"+id, token)
}

func (c *Client) ListUsers(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, "users", "/api/users", token)
}

func (c *Client) CreateUser(ctx context.Context, token string, form ports.UserForm) (json.RawMessage, error) {
	return c.sendMultipart(ctx, "users", http.MethodPost, "/api/users", token, userFields(form), form.Image)
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, form ports.UserForm) (json.RawMessage, error) {
	return c.sendMultipart(ctx, "users", http.MethodPatch, "/api/users/update/"+id, token, userFields(form), form.Image)
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.delete(ctx, "users", "/api/users/"+id, token)
}

func (c *Client) ListDonations(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, "donations", "/api/donations", token)
}

func (c *Client) DonationsReport(ctx context.Context, token, dateRange string) (json.RawMessage, error) {
	return c.getRaw(ctx, "reports", "/api/reports/donations/"+dateRange, token)
}

func (c *Client) DashboardStats(ctx context.Context, token string) (json.RawMessage, error) {
	return c.getRaw(ctx, "dashboard", "/api/dashboard", token)
}

// Ping probes the upstream API root for the readiness check. Any HTTP
// response counts as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// --- form field mapping ---

func childFields(form ports.ChildForm) map[string]string {
	return map[string]string{
		"name":              form.Name,
		"gender":            form.Gender,
		"dateOfBirth":       form.DateOfBirth,
		"dateOfAdmission":   form.DateOfAdmission,
		"vaccinations":      form.Vaccinations,
		"allergies":         form.Allergies,
		"principalName":     form.PrincipalName,
		"principalPhone":    form.PrincipalPhone,
		"principalLocation": form.PrincipalLocation,
	}
}

func staffFields(form ports.StaffForm) map[string]string {
	fields := map[string]string{
		"name":      form.Name,
		"staffRole": form.StaffRole,
		"phone":     form.Phone,
		"email":     form.Email,
		"salary":    form.Salary,
	}
	if form.Password != "" {
		fields["password"] = form.Password
	}
	return fields
}

func userFields(form ports.UserForm) map[string]string {
	fields := map[string]string{
		"name":  form.Name,
		"email": form.Email,
	}
	if form.Role != "" {
		fields["role"] = form.Role
	}
	if form.Password != "" {
		fields["password"] = form.Password
	}
	return fields
}

// --- transport plumbing ---

func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(endpoint, req)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, endpoint, path, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	setBearer(req, token)
	return c.do(endpoint, req)
}

func (c *Client) delete(ctx context.Context, endpoint, path, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	setBearer(req, token)
	_, err = c.do(endpoint, req)
	return err
}

func (c *Client) sendMultipart(ctx context.Context, endpoint, method, path, token string, fields map[string]string, file *ports.FileUpload) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%s`, strconv.Quote(file.Filename)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setBearer(req, token)

	return c.do(endpoint, req)
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do executes the request, records latency and maps non-2xx responses to
// domain.UpstreamError. The upstream message is pulled from the {message}
// or {error} envelope when present.
func (c *Client) do(endpoint string, req *http.Request) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("upstream unreachable")
		return nil, &domain.UpstreamError{Status: http.StatusBadGateway}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint, statusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &domain.UpstreamError{Status: http.StatusBadGateway}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Message: extractMessage(body)}
	}
	return body, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
