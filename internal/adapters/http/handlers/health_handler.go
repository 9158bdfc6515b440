package handlers

import (
	"context"

	"garderie-api/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg     *config.Config
	checkDB func(context.Context) error
}

// NewHealthHandler creates a new health handler. checkDB may be nil when
// there is no SQL database to ping.
func NewHealthHandler(cfg *config.Config, checkDB func(context.Context) error) *HealthHandler {
	return &HealthHandler{cfg: cfg, checkDB: checkDB}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 " + h.cfg.DaycareName + " API is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	dbStatus := "healthy"
	if h.checkDB != nil {
		if err := h.checkDB(c.UserContext()); err != nil {
			status = fiber.StatusServiceUnavailable
			dbStatus = "unhealthy"
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
			"driver":   h.cfg.Database.Driver,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": h.cfg.DaycareName + " API",
		"version": "1.0.0",
	})
}
