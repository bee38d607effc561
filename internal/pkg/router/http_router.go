package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/confeitapro/confeitapro/app/controllers"
	"github.com/confeitapro/confeitapro/internal/pkg/constants"
	"github.com/confeitapro/confeitapro/internal/pkg/middleware"
	"github.com/confeitapro/confeitapro/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "confeitapro", "status": "ok"})
	})

	// The webhook endpoint answers OPTIONS preflights and rejects other
	// methods itself, so every method is routed to the handler. It lives
	// outside the rate-limited /api group and outside any auth middleware:
	// Stripe authenticates through the signature header, not a session,
	// and redeliveries must never be throttled away.
	app.All(constants.StripeWebhookRoute, controllers.HandleStripeWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
