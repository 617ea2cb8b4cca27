package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/ports"
)

// ChildrenHandler fronts the child-management screen. Forms arrive as
// multipart because every modal can carry a photo; list payloads pass
// through from upstream untouched.
type ChildrenHandler struct {
	service ports.ResourceService
}

func NewChildrenHandler(service ports.ResourceService) *ChildrenHandler {
	return &ChildrenHandler{service: service}
}

func childFormFrom(c echo.Context) (ports.ChildForm, error) {
	image, err := formFile(c, "image")
	if err != nil {
		return ports.ChildForm{}, err
	}
	return ports.ChildForm{
		Name:              c.FormValue("name"),
		Gender:            c.FormValue("gender"),
		DateOfBirth:       c.FormValue("dateOfBirth"),
		DateOfAdmission:   c.FormValue("dateOfAdmission"),
		Vaccinations:      c.FormValue("vaccinations"),
		Allergies:         c.FormValue("allergies"),
		PrincipalName:     c.FormValue("principalName"),
		PrincipalPhone:    c.FormValue("principalPhone"),
		PrincipalLocation: c.FormValue("principalLocation"),
		Image:             image,
	}, nil
}

// List handles GET /api/children.
//
// @Summary      List children
// @Tags         children
// @Produce      json
// @Success      200  {array}   map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/children [get]
func (h *ChildrenHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	raw, err := h.service.ListChildren(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Create handles POST /api/children.
//
// @Summary      Add a child record
// @Tags         children
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/children [post]
func (h *ChildrenHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := childFormFrom(c)
	if err != nil {
		return err
	}

	raw, err := h.service.CreateChild(c.Request().Context(), sess.Token, form)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, raw)
}

// Update handles PUT /api/children/:id.
//
// @Summary      Update a child record
// @Tags         children
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path      string  true  "Child id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/children/{id} [put]
func (h *ChildrenHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := childFormFrom(c)
	if err != nil {
		return err
	}

	raw, err := h.service.UpdateChild(c.Request().Context(), sess.Token, c.Param("id"), form)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Delete handles DELETE /api/children/:id.
//
// @Summary      Delete a child record
// @Tags         children
// @Param        id  path  string  true  "Child id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/children/{id} [delete]
func (h *ChildrenHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteChild(c.Request().Context(), sess.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
