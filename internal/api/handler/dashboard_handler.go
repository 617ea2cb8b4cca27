package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/ports"
)

// DashboardHandler serves the read-only screens: dashboard tiles, the
// donations table and the donations report.
type DashboardHandler struct {
	service ports.ResourceService
}

func NewDashboardHandler(service ports.ResourceService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// reportRanges are the selector values the report screen offers.
var reportRanges = map[string]struct{}{
	"all":   {},
	"week":  {},
	"month": {},
	"year":  {},
}

// Stats handles GET /api/dashboard.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	raw, err := h.service.DashboardStats(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// Donations handles GET /api/donations.
//
// @Summary      List donations
// @Tags         donations
// @Produce      json
// @Success      200  {array}   map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/donations [get]
func (h *DashboardHandler) Donations(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	raw, err := h.service.ListDonations(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// DonationsReport handles GET /api/reports/donations/:range.
//
// @Summary      Donations report for a date range
// @Tags         donations
// @Produce      json
// @Param        range  path      string  true  "Report range"  Enums(all, week, month, year)
// @Success      200    {object}  map[string]any
// @Failure      400    {object}  map[string]string
// @Router       /api/reports/donations/{range} [get]
func (h *DashboardHandler) DonationsReport(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	dateRange := c.Param("range")
	if _, ok := reportRanges[dateRange]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "range must be one of: all, week, month, year")
	}

	raw, err := h.service.DonationsReport(c.Request().Context(), sess.Token, dateRange)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}
