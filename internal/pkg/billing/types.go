package billing

// CustomerSubscription is the provider-neutral shape of the most recent
// subscription Stripe reports for a customer. The reconciler mirrors it
// into the local snapshot table.
type CustomerSubscription struct {
	SubscriptionID     string
	PriceID            string // empty when the subscription has no line items
	CurrentPeriodStart int64  // epoch seconds
	CurrentPeriodEnd   int64  // epoch seconds
	CancelAtPeriodEnd  bool
	Status             string
	PaymentMethod      PaymentMethod // nil when Stripe reports none
}

// PaymentMethod is the default payment method attached to a subscription.
// Stripe returns either a bare id reference or, when expansion was
// requested and succeeded, the full object. Only the expanded card variant
// carries brand/last4 into the snapshot.
type PaymentMethod interface {
	isPaymentMethod()
}

// PaymentMethodRef is an unexpanded reference to a payment method.
type PaymentMethodRef struct {
	ID string
}

// PaymentMethodCard is an expanded card payment method.
type PaymentMethodCard struct {
	Brand string
	Last4 string
}

func (PaymentMethodRef) isPaymentMethod()  {}
func (PaymentMethodCard) isPaymentMethod() {}

// OrderInput is the normalized input for recording a completed one-time
// checkout.
type OrderInput struct {
	CheckoutSessionID string
	PaymentIntentID   string
	CustomerID        string
	AmountSubtotal    int64
	AmountTotal       int64
	Currency          string
	PaymentStatus     string
}
