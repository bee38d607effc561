package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/confeitapro/confeitapro/app/controllers"
	"github.com/confeitapro/confeitapro/internal/pkg/constants"
	"github.com/confeitapro/confeitapro/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group(constants.APIV1Route)

	// Auth routes stay session-free.
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleAuthRegister)
	auth.Post("/login", controllers.HandleAuthLogin)
	auth.Post("/logout", controllers.HandleAuthLogout)
	auth.Get("/me", controllers.HandleAuthMe)

	// Billing routes need a session but not an active subscription: a user
	// must be able to subscribe and inspect their status while unpaid.
	billing := v1.Group("/billing", middleware.RequireAPISessionAuth)
	billing.Get("/catalog", controllers.HandleListCatalog)
	billing.Post("/checkout", controllers.HandleCreateCheckout)
	billing.Get("/subscription", controllers.HandleSubscriptionStatus)
	billing.Get("/orders", controllers.HandleListBillingOrders)

	// The management surface is the paid product.
	paid := v1.Group("", middleware.RequireAPISessionAuth, middleware.RequireActiveSubscription)

	paid.Get("/stats", controllers.HandleDashboardStats)

	customers := paid.Group("/customers")
	customers.Get("/", controllers.HandleListCustomers)
	customers.Post("/", controllers.HandleCreateCustomer)
	customers.Get("/:id", controllers.HandleGetCustomer)
	customers.Put("/:id", controllers.HandleUpdateCustomer)
	customers.Delete("/:id", controllers.HandleDeleteCustomer)

	products := paid.Group("/products")
	products.Get("/", controllers.HandleListProducts)
	products.Post("/", controllers.HandleCreateProduct)
	products.Get("/:id", controllers.HandleGetProduct)
	products.Put("/:id", controllers.HandleUpdateProduct)
	products.Delete("/:id", controllers.HandleDeleteProduct)

	orders := paid.Group("/orders")
	orders.Get("/", controllers.HandleListOrders)
	orders.Post("/", controllers.HandleCreateOrder)
	orders.Get("/:id", controllers.HandleGetOrder)
	orders.Patch("/:id/status", controllers.HandleUpdateOrderStatus)
	orders.Delete("/:id", controllers.HandleDeleteOrder)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
