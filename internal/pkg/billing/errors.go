package billing

import "errors"

// Error taxonomy for the webhook path. Signature failures are terminal and
// must be answered with 400 so Stripe does not retry a request that can
// never verify. Upstream and persistence failures are transient and must
// bubble up to a 5xx so Stripe redelivers the event.
var (
	ErrSignatureInvalid = errors.New("invalid webhook signature")
	ErrUpstreamQuery    = errors.New("billing provider query failed")
	ErrPersistence      = errors.New("billing persistence failed")
)
