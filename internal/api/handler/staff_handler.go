package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/ports"
)

// StaffHandler fronts the staff-management screen.
type StaffHandler struct {
	service ports.ResourceService
}

func NewStaffHandler(service ports.ResourceService) *StaffHandler {
	return &StaffHandler{service: service}
}

func staffFormFrom(c echo.Context) (ports.StaffForm, error) {
	image, err := formFile(c, "image")
	if err != nil {
		return ports.StaffForm{}, err
	}
	return ports.StaffForm{
		Name:      c.FormValue("name"),
		StaffRole: c.FormValue("staffRole"),
		Phone:     c.FormValue("phone"),
		Email:     c.FormValue("email"),
		Salary:    c.FormValue("salary"),
		Password:  c.FormValue("password"),
		Image:     image,
	}, nil
}

// List handles GET /api/staff.
//
// @Summary      List staff members
// @Tags         staff
// @Produce      json
// @Success      200  {array}   map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/staff [get]
func (h *StaffHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	raw, err := h.service.ListStaff(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Create handles POST /api/staff. The password field is accepted here only;
// edits never change it.
//
// @Summary      Add a staff member
// @Tags         staff
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/staff [post]
func (h *StaffHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := staffFormFrom(c)
	if err != nil {
		return err
	}

	raw, err := h.service.CreateStaff(c.Request().Context(), sess.Token, form)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, raw)
}

// Update handles PUT /api/staff/:id.
//
// @Summary      Update a staff member
// @Tags         staff
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path      string  true  "Staff id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/staff/{id} [put]
func (h *StaffHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := staffFormFrom(c)
	if err != nil {
		return err
	}
	form.Password = ""

	raw, err := h.service.UpdateStaff(c.Request().Context(), sess.Token, c.Param("id"), form)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Delete handles DELETE /api/staff/:id.
//
// @Summary      Delete a staff member
// @Tags         staff
// @Param        id  path  string  true  "Staff id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/staff/{id} [delete]
func (h *StaffHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteStaff(c.Request().Context(), sess.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
