package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/confeitapro/confeitapro/internal/pkg/statistics"
)

// HandleDashboardStats returns the authenticated user's dashboard counts.
func HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := statistics.GetDashboardStats(currentUserID(c))
	if err != nil {
		log.Printf("stats: loading dashboard stats failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load statistics")
	}
	return c.JSON(stats)
}
