package handlers

import (
	"garderie-api/internal/core/services"
	"garderie-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard and report endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the admin dashboard figures
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.DashboardStats
// @Failure 403 {object} response.Message
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.Stats(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, stats)
}

// FinancialReport buckets revenue per day, ISO week or month
// @Summary Financial report
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "First day (YYYY-MM-DD), one month ago by default"
// @Param endDate query string false "Last day, inclusive (YYYY-MM-DD), today by default"
// @Param groupBy query string false "day, week or month" default(day)
// @Success 200 {array} services.FinancialBucket
// @Failure 400 {object} response.Message
// @Router /dashboard/financial-report [get]
func (h *DashboardHandler) FinancialReport(c *fiber.Ctx) error {
	report, err := h.dashboardService.FinancialReport(c.UserContext(), &services.FinancialReportInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		GroupBy:   c.Query("groupBy"),
	})
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, report)
}
