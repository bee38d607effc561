package billing

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// VerifyEvent checks the Stripe-Signature header against the raw request
// body and the shared webhook secret. The body must be passed exactly as
// received; re-serialized JSON will not verify. On failure the caller must
// reject the request without side effects.
func VerifyEvent(payload []byte, signatureHeader, secret string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return event, nil
}

// Event is a verified webhook event decoded into one of the kinds this
// application acts on. Everything else decodes to Unrecognized, which the
// dispatcher acknowledges as a successful no-op so Stripe does not retry.
type Event interface {
	isEvent()
}

// SubscriptionCheckoutCompleted is a checkout.session.completed event in
// subscription mode.
type SubscriptionCheckoutCompleted struct {
	CustomerID string
}

// PaymentCheckoutCompleted is a checkout.session.completed event in
// one-time payment mode.
type PaymentCheckoutCompleted struct {
	Order OrderInput
}

// SubscriptionChanged covers customer.subscription.created and
// customer.subscription.updated.
type SubscriptionChanged struct {
	CustomerID string
}

// SubscriptionDeleted is customer.subscription.deleted. It is handled on a
// direct cancellation path: a deleted subscription may no longer be
// queryable from Stripe, so no re-fetch happens.
type SubscriptionDeleted struct {
	CustomerID string
}

// InvoicePaymentSucceeded is invoice.payment_succeeded. SubscriptionID is
// empty for invoices not tied to a subscription; those are ignored.
type InvoicePaymentSucceeded struct {
	CustomerID     string
	SubscriptionID string
}

// InvoicePaymentFailed is invoice.payment_failed.
type InvoicePaymentFailed struct {
	CustomerID     string
	SubscriptionID string
}

// Unrecognized is any event type this application chooses not to act on.
type Unrecognized struct {
	Type string
}

func (SubscriptionCheckoutCompleted) isEvent() {}
func (PaymentCheckoutCompleted) isEvent()      {}
func (SubscriptionChanged) isEvent()           {}
func (SubscriptionDeleted) isEvent()           {}
func (InvoicePaymentSucceeded) isEvent()       {}
func (InvoicePaymentFailed) isEvent()          {}
func (Unrecognized) isEvent()                  {}

// DecodeEvent maps a verified Stripe event envelope onto the closed event
// union. Decode errors mean the payload shape did not match the event type
// and must propagate so the delivery is retried.
func DecodeEvent(event stripe.Event) (Event, error) {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		return decodeCheckoutSession(&session), nil

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		return SubscriptionChanged{CustomerID: customerID(sub.Customer)}, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		return SubscriptionDeleted{CustomerID: customerID(sub.Customer)}, nil

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		return InvoicePaymentSucceeded{
			CustomerID:     customerID(inv.Customer),
			SubscriptionID: invoiceSubscriptionID(&inv),
		}, nil

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		return InvoicePaymentFailed{
			CustomerID:     customerID(inv.Customer),
			SubscriptionID: invoiceSubscriptionID(&inv),
		}, nil

	default:
		return Unrecognized{Type: string(event.Type)}, nil
	}
}

func decodeCheckoutSession(session *stripe.CheckoutSession) Event {
	switch session.Mode {
	case stripe.CheckoutSessionModeSubscription:
		// Subscription-mode checkouts flow through the snapshot instead of
		// the order table.
		return SubscriptionCheckoutCompleted{CustomerID: customerID(session.Customer)}
	case stripe.CheckoutSessionModePayment:
		order := OrderInput{
			CheckoutSessionID: session.ID,
			CustomerID:        customerID(session.Customer),
			AmountSubtotal:    session.AmountSubtotal,
			AmountTotal:       session.AmountTotal,
			Currency:          string(session.Currency),
			PaymentStatus:     string(session.PaymentStatus),
		}
		if session.PaymentIntent != nil {
			order.PaymentIntentID = session.PaymentIntent.ID
		}
		return PaymentCheckoutCompleted{Order: order}
	default:
		return Unrecognized{Type: "checkout.session.completed:" + string(session.Mode)}
	}
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func invoiceSubscriptionID(inv *stripe.Invoice) string {
	if inv.Subscription == nil {
		return ""
	}
	return inv.Subscription.ID
}
