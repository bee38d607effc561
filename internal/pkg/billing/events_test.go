package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v79"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload produces a Stripe-Signature header value for the given body,
// using the v1 scheme: HMAC-SHA256 over "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(t *testing.T, eventType string, object map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":          "evt_test_1",
		"object":      "event",
		"api_version": "2024-06-20",
		"type":        eventType,
		"data":        map[string]any{"object": object},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return raw
}

func TestVerifyEventAcceptsValidSignature(t *testing.T) {
	payload := eventPayload(t, "checkout.session.completed", map[string]any{
		"id":   "cs_test_1",
		"mode": "subscription",
	})
	header := signPayload(payload, testWebhookSecret, time.Now())

	event, err := VerifyEvent(payload, header, testWebhookSecret)
	if err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if event.Type != "checkout.session.completed" {
		t.Errorf("event type = %q", event.Type)
	}
}

func TestVerifyEventRejectsBadSignature(t *testing.T) {
	payload := eventPayload(t, "checkout.session.completed", map[string]any{"id": "cs_test_1"})

	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", signPayload(payload, "whsec_other", time.Now())},
		{"stale timestamp", signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))},
		{"garbage header", "t=notanumber,v1=deadbeef"},
		{"empty header", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyEvent(payload, tt.header, testWebhookSecret)
			if !errors.Is(err, ErrSignatureInvalid) {
				t.Fatalf("expected ErrSignatureInvalid, got %v", err)
			}
		})
	}
}

func TestVerifyEventRejectsTamperedBody(t *testing.T) {
	payload := eventPayload(t, "checkout.session.completed", map[string]any{"id": "cs_test_1"})
	header := signPayload(payload, testWebhookSecret, time.Now())

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'X'
	if _, err := VerifyEvent(tampered, header, testWebhookSecret); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for tampered body, got %v", err)
	}
}

func decodeRaw(t *testing.T, eventType string, object map[string]any) Event {
	t.Helper()
	var event stripe.Event
	if err := json.Unmarshal(eventPayload(t, eventType, object), &event); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	decoded, err := DecodeEvent(event)
	if err != nil {
		t.Fatalf("decode %s: %v", eventType, err)
	}
	return decoded
}

func TestDecodeEventSubscriptionCheckout(t *testing.T) {
	decoded := decodeRaw(t, "checkout.session.completed", map[string]any{
		"id":       "cs_test_1",
		"mode":     "subscription",
		"customer": map[string]any{"id": "cus_123"},
	})
	ev, ok := decoded.(SubscriptionCheckoutCompleted)
	if !ok {
		t.Fatalf("decoded to %T", decoded)
	}
	if ev.CustomerID != "cus_123" {
		t.Errorf("customer id = %q", ev.CustomerID)
	}
}

func TestDecodeEventPaymentCheckout(t *testing.T) {
	decoded := decodeRaw(t, "checkout.session.completed", map[string]any{
		"id":              "cs_test_1",
		"mode":            "payment",
		"customer":        map[string]any{"id": "cus_123"},
		"payment_intent":  map[string]any{"id": "pi_1"},
		"amount_subtotal": 1990,
		"amount_total":    1990,
		"currency":        "brl",
		"payment_status":  "paid",
	})
	ev, ok := decoded.(PaymentCheckoutCompleted)
	if !ok {
		t.Fatalf("decoded to %T", decoded)
	}
	want := OrderInput{
		CheckoutSessionID: "cs_test_1",
		PaymentIntentID:   "pi_1",
		CustomerID:        "cus_123",
		AmountSubtotal:    1990,
		AmountTotal:       1990,
		Currency:          "brl",
		PaymentStatus:     "paid",
	}
	if ev.Order != want {
		t.Errorf("order = %+v, want %+v", ev.Order, want)
	}
}

func TestDecodeEventCheckoutUnknownMode(t *testing.T) {
	decoded := decodeRaw(t, "checkout.session.completed", map[string]any{
		"id":   "cs_test_1",
		"mode": "setup",
	})
	if _, ok := decoded.(Unrecognized); !ok {
		t.Fatalf("setup-mode checkout decoded to %T, want Unrecognized", decoded)
	}
}

func TestDecodeEventSubscriptionLifecycle(t *testing.T) {
	object := map[string]any{
		"id":       "sub_123",
		"customer": map[string]any{"id": "cus_123"},
	}

	for _, eventType := range []string{"customer.subscription.created", "customer.subscription.updated"} {
		decoded := decodeRaw(t, eventType, object)
		ev, ok := decoded.(SubscriptionChanged)
		if !ok {
			t.Fatalf("%s decoded to %T", eventType, decoded)
		}
		if ev.CustomerID != "cus_123" {
			t.Errorf("%s customer id = %q", eventType, ev.CustomerID)
		}
	}

	decoded := decodeRaw(t, "customer.subscription.deleted", object)
	ev, ok := decoded.(SubscriptionDeleted)
	if !ok {
		t.Fatalf("deleted decoded to %T", decoded)
	}
	if ev.CustomerID != "cus_123" {
		t.Errorf("deleted customer id = %q", ev.CustomerID)
	}
}

func TestDecodeEventInvoices(t *testing.T) {
	decoded := decodeRaw(t, "invoice.payment_succeeded", map[string]any{
		"id":           "in_1",
		"customer":     map[string]any{"id": "cus_123"},
		"subscription": map[string]any{"id": "sub_123"},
	})
	succeeded, ok := decoded.(InvoicePaymentSucceeded)
	if !ok {
		t.Fatalf("decoded to %T", decoded)
	}
	if succeeded.CustomerID != "cus_123" || succeeded.SubscriptionID != "sub_123" {
		t.Errorf("got %+v", succeeded)
	}

	decoded = decodeRaw(t, "invoice.payment_failed", map[string]any{
		"id":       "in_2",
		"customer": map[string]any{"id": "cus_123"},
	})
	failed, ok := decoded.(InvoicePaymentFailed)
	if !ok {
		t.Fatalf("decoded to %T", decoded)
	}
	if failed.SubscriptionID != "" {
		t.Errorf("one-off invoice must have empty subscription id, got %q", failed.SubscriptionID)
	}
}

func TestDecodeEventUnrecognized(t *testing.T) {
	decoded := decodeRaw(t, "payment_intent.succeeded", map[string]any{"id": "pi_1"})
	ev, ok := decoded.(Unrecognized)
	if !ok {
		t.Fatalf("decoded to %T", decoded)
	}
	if ev.Type != "payment_intent.succeeded" {
		t.Errorf("type = %q", ev.Type)
	}
}
