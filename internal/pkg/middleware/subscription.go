package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/confeitapro/confeitapro/internal/pkg/billing"
	"github.com/confeitapro/confeitapro/internal/pkg/database"
	"github.com/confeitapro/confeitapro/internal/pkg/usercontext"
)

// RequireActiveSubscription gates paid API routes on the stored snapshot.
// Classification fails open to "unknown", which is still not entitled, so a
// broken snapshot never grants access but also never crashes the request.
func RequireActiveSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := billing.NewServiceFromDB(database.GetDB(), billing.NewStripeAPIFromEnv())
	snap, err := svc.SnapshotForUser(ctx, userCtx.UserID)
	if err != nil {
		log.Printf("middleware: subscription lookup for user %d failed: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Failed to check subscription",
		})
	}

	state := billing.Classify(snap)
	if !state.Entitled() {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error":   "subscription_required",
			"message": "An active subscription is required",
			"state":   state,
		})
	}
	return c.Next()
}
