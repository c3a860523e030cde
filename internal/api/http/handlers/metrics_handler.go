package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soryntech/portfolio-api/internal/observability"
)

// MetricsHandler reports the in-memory request counters. Owner only.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Get handles GET /api/metrics.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
	})
}
