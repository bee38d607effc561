package billing

import (
	"context"
	"errors"
	"strings"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/confeitapro/confeitapro/internal/pkg/env"
)

// ProviderAPI is the slice of the Stripe API the billing service needs.
type ProviderAPI interface {
	// LatestSubscription returns the customer's most recent subscription in
	// any status, with the default payment method expanded. Returns
	// (nil, nil) when the customer has no subscriptions at all.
	LatestSubscription(ctx context.Context, customerID string) (*CustomerSubscription, error)

	// CreateCustomer creates a Stripe customer and returns its id.
	CreateCustomer(ctx context.Context, email, name string) (string, error)
}

// CheckoutSession is a created Stripe Checkout session.
type CheckoutSession struct {
	ID  string
	URL string
}

// StripeAPI implements ProviderAPI against the Stripe REST API. The client
// handle is an explicit dependency; the package-level stripe key is never
// set.
type StripeAPI struct {
	sc *client.API
}

// NewStripeAPI creates a Stripe API wrapper from a secret key.
func NewStripeAPI(secretKey string) *StripeAPI {
	sc := &client.API{}
	sc.Init(strings.TrimSpace(secretKey), nil)
	return &StripeAPI{sc: sc}
}

// NewStripeAPIFromEnv creates a Stripe API wrapper configured via
// STRIPE_SECRET_KEY.
func NewStripeAPIFromEnv() *StripeAPI {
	return NewStripeAPI(env.GetEnv("STRIPE_SECRET_KEY", ""))
}

func (s *StripeAPI) LatestSubscription(ctx context.Context, customerID string) (*CustomerSubscription, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, errors.New("customer id is required")
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)
	params.AddExpand("data.default_payment_method")

	iter := s.sc.Subscriptions.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return mapSubscription(iter.Subscription()), nil
}

func (s *StripeAPI) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	if strings.TrimSpace(name) != "" {
		params.Name = stripe.String(name)
	}

	cust, err := s.sc.Customers.New(params)
	if err != nil {
		return "", err
	}
	return cust.ID, nil
}

// NewCheckoutSession creates a Checkout session for a single catalog price.
func (s *StripeAPI) NewCheckoutSession(ctx context.Context, customerID, priceID, mode, successURL, cancelURL string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(mode),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx

	sess, err := s.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func mapSubscription(sub *stripe.Subscription) *CustomerSubscription {
	out := &CustomerSubscription{
		SubscriptionID:     sub.ID,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		Status:             string(sub.Status),
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		out.PriceID = sub.Items.Data[0].Price.ID
	}

	// Stripe returns the default payment method as a bare reference unless
	// expansion succeeded; only the expanded object carries card details.
	if pm := sub.DefaultPaymentMethod; pm != nil {
		if pm.Card != nil {
			out.PaymentMethod = PaymentMethodCard{
				Brand: string(pm.Card.Brand),
				Last4: pm.Card.Last4,
			}
		} else {
			out.PaymentMethod = PaymentMethodRef{ID: pm.ID}
		}
	}

	return out
}
