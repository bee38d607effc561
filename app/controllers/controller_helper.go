package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/confeitapro/confeitapro/internal/pkg/usercontext"
)

// currentUserID returns the authenticated user's id from the request
// context, or 0 when the request is anonymous.
func currentUserID(c *fiber.Ctx) uint {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return 0
	}
	return userCtx.UserID
}

// parseIDParam reads a numeric route parameter like :id.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}
