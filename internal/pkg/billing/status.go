package billing

import (
	"strings"

	"github.com/confeitapro/confeitapro/app/models"
)

// SubscriptionState is the read-side classification of a snapshot. It is a
// pure function of the latest stored status: no transition table is
// enforced here, and values the classifier was never told about fall open
// to StateUnknown instead of erroring.
type SubscriptionState string

const (
	StateNoSubscription SubscriptionState = "no_subscription"
	StateActive         SubscriptionState = "active"
	StatePending        SubscriptionState = "pending"
	StateCanceled       SubscriptionState = "canceled"
	StateUnknown        SubscriptionState = "unknown"
)

// ClassifyStatus maps a raw snapshot status onto the five-state model.
func ClassifyStatus(status string) SubscriptionState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.SubscriptionStatusActive:
		return StateActive
	case models.SubscriptionStatusIncomplete, models.SubscriptionStatusNotStarted:
		return StatePending
	case models.SubscriptionStatusCanceled:
		return StateCanceled
	default:
		return StateUnknown
	}
}

// Classify evaluates the state for a snapshot, which may be nil when no
// row exists for the customer.
func Classify(snap *models.StripeSubscription) SubscriptionState {
	if snap == nil {
		return StateNoSubscription
	}
	return ClassifyStatus(snap.Status)
}

// Entitled reports whether the state grants access to the paid surface.
func (s SubscriptionState) Entitled() bool {
	return s == StateActive
}
