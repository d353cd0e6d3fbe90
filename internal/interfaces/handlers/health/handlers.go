package health

import (
	healthsvc "listd-backend/internal/application/health"
	"listd-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ServiceName is reported by /health/json.
const ServiceName = "listd-api"

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Collector      *healthsvc.Collector
	HealthAdminKey string
}

// Reset clears health stats in Redis. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if !h.admin(c) {
		return response.Message(c, fiber.StatusForbidden, "Unauthorized")
	}
	if h.Collector.Rdb == nil {
		return response.Message(c, fiber.StatusServiceUnavailable, "Redis not configured")
	}
	if err := h.Collector.Reset(c.UserContext()); err != nil {
		return response.Error(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stats reset successfully", "success": true})
}

// JSON returns service, status, runtime, traffic and dependencies.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := h.Collector.Collect(c.UserContext())
	return c.JSON(fiber.Map{
		"service":      ServiceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the last logged 5xx entries, newest first. Entries carry
// the hidden failure cause, so it requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if !h.admin(c) {
		return response.Message(c, fiber.StatusForbidden, "Unauthorized")
	}
	entries, err := h.Collector.ErrorLog(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("health: error log read failed")
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}

func (h *Handlers) admin(c *fiber.Ctx) bool {
	key := c.Query("key")
	return key != "" && key == h.HealthAdminKey
}
