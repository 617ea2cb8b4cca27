package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/api/middleware"
	"github.com/orohange/console-gateway/internal/core/domain"
)

// NavigationHandler owns the console's entry points: the root redirect and
// the view descriptors the front end renders screens from.
type NavigationHandler struct{}

func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

type navItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type viewResponse struct {
	View string    `json:"view"`
	Nav  []navItem `json:"nav,omitempty"`
}

// navFor returns the sidebar entries a role may navigate to. The guard is
// still the authority; this only shapes what the console draws.
func navFor(role domain.Role) []navItem {
	switch role {
	case domain.RoleAdmin:
		return []navItem{
			{Label: "Dashboard", Path: domain.PathAdminDashboard},
			{Label: "Children", Path: "/children"},
			{Label: "Staff", Path: "/staff"},
			{Label: "Donations", Path: "/donations"},
			{Label: "Users", Path: "/users"},
			{Label: "Reports", Path: "/reports"},
			{Label: "Profile", Path: "/profile"},
		}
	case domain.RoleStaff:
		return []navItem{
			{Label: "Dashboard", Path: domain.PathStaffDashboard},
			{Label: "Children", Path: "/children"},
			{Label: "Donations", Path: "/donations"},
			{Label: "Profile", Path: "/profile"},
		}
	default:
		return nil
	}
}

// Root handles GET /: the signed-in caller lands on their dashboard, anyone
// else on the sign-in screen.
//
// @Summary      Role-aware landing redirect
// @Tags         navigation
// @Success      302
// @Router       / [get]
func (h *NavigationHandler) Root(c echo.Context) error {
	role := domain.RoleNone
	if sess := middleware.SessionFrom(c); sess != nil {
		role = sess.Identity.Role
	}
	return c.Redirect(http.StatusFound, domain.LandingPath(role))
}

// PublicView serves the unguarded screens: sign-in, sign-up and
// forgot-password.
func (h *NavigationHandler) PublicView(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, viewResponse{View: view})
	}
}

// GuardedView serves a screen behind the role guard, with the caller's
// navigation entries attached.
func (h *NavigationHandler) GuardedView(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := ctxSession(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, viewResponse{
			View: view,
			Nav:  navFor(sess.Identity.Role),
		})
	}
}
