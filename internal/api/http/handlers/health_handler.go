package handlers

import "github.com/gofiber/fiber/v2"

// HealthHandler responds to liveness probes.
type HealthHandler struct{}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
