package api

import (
	"github.com/Caia-Tech/pairforge/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// MetricsHandler provides HTTP endpoints for store telemetry.
type MetricsHandler struct {
	metrics *storage.SimpleMetricsCollector
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metrics *storage.SimpleMetricsCollector) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// GetMetrics returns aggregated store operation metrics
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics_summary":  h.metrics.GetMetricsSummary(),
		"total_operations": len(h.metrics.GetMetrics()),
	})
}

// ClearMetrics clears all collected metrics (useful for testing)
func (h *MetricsHandler) ClearMetrics(c *fiber.Ctx) error {
	h.metrics.ClearMetrics()
	return c.JSON(fiber.Map{
		"message": "Metrics cleared successfully",
	})
}
