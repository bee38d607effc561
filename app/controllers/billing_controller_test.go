package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWebhookTestApp() *fiber.App {
	app := fiber.New()
	app.All("/webhooks/stripe", HandleStripeWebhook)
	return app
}

func TestStripeWebhookPreflight(t *testing.T) {
	app := newWebhookTestApp()

	req := httptest.NewRequest(fiber.MethodOptions, "/webhooks/stripe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Stripe-Signature")
}

func TestStripeWebhookMethodNotAllowed(t *testing.T) {
	app := newWebhookTestApp()

	for _, method := range []string{fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete} {
		req := httptest.NewRequest(method, "/webhooks/stripe", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode, method)
	}
}

func TestStripeWebhookBadSignature(t *testing.T) {
	app := newWebhookTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/stripe",
		strings.NewReader(`{"id":"evt_1","type":"checkout.session.completed"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// Invalid signatures are terminal: 400, no side effects, no retry.
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
