package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/confeitapro/confeitapro/app/models"
	"github.com/confeitapro/confeitapro/app/repository"
	"github.com/confeitapro/confeitapro/internal/pkg/billing"
	"github.com/confeitapro/confeitapro/internal/pkg/database"
	"github.com/confeitapro/confeitapro/internal/pkg/env"
	"github.com/confeitapro/confeitapro/internal/pkg/metrics/counter"
	"github.com/confeitapro/confeitapro/internal/pkg/usercontext"
)

type checkoutRequest struct {
	PriceID string `json:"price_id"`
}

// HandleStripeWebhook receives Stripe webhook deliveries. The raw body is
// verified against the Stripe-Signature header before anything else
// happens; handler failures answer 5xx so Stripe redelivers, while events
// this application does not act on are acknowledged with 200.
func HandleStripeWebhook(c *fiber.Ctx) error {
	setWebhookCORSHeaders(c)

	switch c.Method() {
	case fiber.MethodOptions:
		return c.SendStatus(fiber.StatusOK)
	case fiber.MethodPost:
		// fall through to delivery handling
	default:
		return jsonError(c, fiber.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	}

	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get("Stripe-Signature")
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	event, err := billing.VerifyEvent(rawBody, signature, secret)
	if err != nil {
		log.Printf("billing: webhook signature verification failed: %v", err)
		_ = counter.AddWebhookRejected()
		return jsonError(c, fiber.StatusBadRequest, "invalid_signature", "Webhook signature verification failed")
	}

	decoded, err := billing.DecodeEvent(event)
	if err != nil {
		log.Printf("billing: webhook payload decode failed for %s: %v", event.Type, err)
		return jsonError(c, fiber.StatusInternalServerError, "decode_failed", "Failed to decode event payload")
	}

	// The webhook response must not depend on the caller's request
	// lifetime; Stripe judges the delivery by the status code alone.
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	svc := billing.NewServiceFromDB(database.GetDB(), billing.NewStripeAPIFromEnv())
	if err := billing.NewDispatcher(svc).Dispatch(ctx, decoded); err != nil {
		log.Printf("billing: handling %s failed: %v", event.Type, err)
		_ = counter.AddWebhookFailed(string(event.Type))
		return jsonError(c, fiber.StatusInternalServerError, "event_failed", "Failed to process event")
	}

	_ = counter.AddWebhookReceived(string(event.Type))
	return c.JSON(fiber.Map{"received": true})
}

func setWebhookCORSHeaders(c *fiber.Ctx) {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type, Stripe-Signature")
}

// HandleListCatalog returns the purchasable catalog.
func HandleListCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": billing.Catalog()})
}

// HandleCreateCheckout creates a Stripe Checkout session for the
// authenticated user and returns its redirect URL.
func HandleCreateCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_body", "Malformed JSON body")
	}

	product, ok := billing.ProductByPriceID(req.PriceID)
	if !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "unknown_price", "Price is not in the catalog")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	api := billing.NewStripeAPIFromEnv()
	svc := billing.NewServiceFromDB(database.GetDB(), api)

	customerID, err := svc.EnsureCustomer(ctx, user)
	if err != nil {
		log.Printf("billing: ensure customer for user %d failed: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to prepare checkout")
	}

	domain := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
	sess, err := api.NewCheckoutSession(ctx, customerID, product.PriceID, product.Mode,
		domain+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		domain+"/checkout/cancel")
	if err != nil {
		log.Printf("billing: checkout session for user %d failed: %v", user.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create checkout session")
	}

	return c.JSON(fiber.Map{"session_id": sess.ID, "url": sess.URL})
}

// HandleSubscriptionStatus returns the authenticated user's subscription
// snapshot classified into the five-state model, plus the catalog product
// the snapshot's price maps to.
func HandleSubscriptionStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := billing.NewServiceFromDB(database.GetDB(), billing.NewStripeAPIFromEnv())
	snap, err := svc.SnapshotForUser(ctx, userCtx.UserID)
	if err != nil {
		log.Printf("billing: snapshot for user %d failed: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}

	state := billing.Classify(snap)
	response := fiber.Map{
		"state":    state,
		"entitled": state.Entitled(),
	}
	if snap != nil {
		response["status"] = snap.Status
		response["cancel_at_period_end"] = snap.CancelAtPeriodEnd
		response["current_period_start"] = snap.CurrentPeriodStart
		response["current_period_end"] = snap.CurrentPeriodEnd
		response["payment_method_brand"] = snap.PaymentMethodBrand
		response["payment_method_last4"] = snap.PaymentMethodLast4
		if snap.PriceID != nil {
			if product, ok := billing.ProductByPriceID(*snap.PriceID); ok {
				response["product_name"] = product.Name
			}
		}
	}
	return c.JSON(response)
}

// HandleListBillingOrders returns the authenticated user's recorded
// one-time purchases.
func HandleListBillingOrders(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := billing.NewServiceFromDB(database.GetDB(), billing.NewStripeAPIFromEnv())
	orders, err := svc.OrdersForUser(ctx, userCtx.UserID)
	if err != nil {
		log.Printf("billing: orders for user %d failed: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load orders")
	}
	if orders == nil {
		orders = []models.StripeOrder{}
	}
	return c.JSON(fiber.Map{"orders": orders})
}
