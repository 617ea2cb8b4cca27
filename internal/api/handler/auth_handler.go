package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/api/middleware"
	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// AuthHandler exposes the two-step sign-in, registration and password-reset
// flows, plus session introspection and logout.
type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type messageResponse struct {
	Message string `json:"message"`
}

// verifyResponse echoes the session token for non-browser clients that
// cannot use the cookie.
type verifyResponse struct {
	Token    string          `json:"token"`
	User     domain.Identity `json:"user"`
	Redirect string          `json:"redirect"`
}

type sessionResponse struct {
	User domain.Identity `json:"user"`
}

// SendOTP starts a sign-in attempt.
//
// @Summary      Start sign-in and send a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Sign-in credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// VerifyOTP completes a sign-in attempt. On success it sets the session
// cookie and tells the console where to land.
//
// @Summary      Verify the one-time code and open a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and one-time code"
// @Success      200   {object}  verifyResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	grant, err := h.authService.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    grant.SessionToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, verifyResponse{
		Token:    grant.SessionToken,
		User:     grant.Identity,
		Redirect: grant.Landing,
	})
}

// Register creates a new account from a multipart form.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Full name"
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  true   "Password"
// @Param        image     formData  file    false  "Profile image"
// @Success      201       {object}  messageResponse
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	image, err := formFile(c, "image")
	if err != nil {
		return err
	}

	msg, err := h.authService.Register(c.Request().Context(), ports.RegisterForm{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Image:    image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// ForgotPassword starts a password reset by mailing a one-time code.
//
// @Summary      Request a password-reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// ResetPassword completes a password reset with the mailed code.
//
// @Summary      Reset the password with a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  resetResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resetResponse{
		Message:  msg,
		Redirect: domain.PathSignIn,
	})
}

// Logout closes the caller's session. It succeeds even when no session is
// open, so a stale console tab can always sign out cleanly.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.SessionFrom(c); sess != nil {
		if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return c.NoContent(http.StatusNoContent)
}

// Session reports who is signed in. The snapshot is re-read from the store
// so profile edits made in another tab show up immediately.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return domain.ErrUnauthorized
	}

	fresh, err := h.authService.CurrentSession(c.Request().Context(), sess.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: fresh.Identity})
}
