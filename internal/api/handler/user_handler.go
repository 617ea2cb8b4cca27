package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/ports"
)

// UserHandler fronts the account-management screen and the signed-in
// account's own profile edit.
type UserHandler struct {
	service ports.ResourceService
}

func NewUserHandler(service ports.ResourceService) *UserHandler {
	return &UserHandler{service: service}
}

func userFormFrom(c echo.Context) (ports.UserForm, error) {
	image, err := formFile(c, "image")
	if err != nil {
		return ports.UserForm{}, err
	}
	return ports.UserForm{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Role:     c.FormValue("role"),
		Image:    image,
	}, nil
}

// List handles GET /api/users.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200  {array}   map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	raw, err := h.service.ListUsers(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Create handles POST /api/users.
//
// @Summary      Add an account
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := userFormFrom(c)
	if err != nil {
		return err
	}

	raw, err := h.service.CreateUser(c.Request().Context(), sess.Token, form)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, raw)
}

// Update handles PATCH /api/users/update/:id. The password never changes
// through this screen. Editing one's own account goes through the profile
// path so the session's identity snapshot stays current.
//
// @Summary      Update an account
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/users/update/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := userFormFrom(c)
	if err != nil {
		return err
	}
	form.Password = ""

	if c.Param("id") == sess.Identity.ID {
		identity, err := h.service.UpdateProfile(c.Request().Context(), sess.ID, ports.ProfileForm{
			Name:  form.Name,
			Email: form.Email,
			Image: form.Image,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, sessionResponse{User: *identity})
	}

	raw, err := h.service.UpdateUser(c.Request().Context(), sess.Token, c.Param("id"), form)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete an account
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), sess.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile handles GET /api/profile: the identity snapshot from the session.
//
// @Summary      Signed-in account's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sess.Identity})
}

// UpdateProfile handles PATCH /api/profile. It edits the signed-in account
// itself and refreshes the identity snapshot the session carries, so the
// console shows the new name without a fresh login.
//
// @Summary      Edit the signed-in account's profile
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	image, err := formFile(c, "image")
	if err != nil {
		return err
	}

	identity, err := h.service.UpdateProfile(c.Request().Context(), sess.ID, ports.ProfileForm{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
		Image: image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: *identity})
}
