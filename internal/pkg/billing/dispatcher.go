package billing

import (
	"context"
	"log"
)

// Dispatcher routes decoded webhook events to their handlers. Handler
// errors propagate to the HTTP layer, which answers 5xx so Stripe
// redelivers; unrecognized events are acknowledged as successful no-ops so
// Stripe is never told to retry events this system chooses not to act on.
type Dispatcher struct {
	svc *Service
}

// NewDispatcher creates a dispatcher over a billing service.
func NewDispatcher(svc *Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case SubscriptionCheckoutCompleted:
		return d.svc.SyncCustomerSubscription(ctx, ev.CustomerID)
	case PaymentCheckoutCompleted:
		return d.svc.RecordOrder(ctx, ev.Order)
	case SubscriptionChanged:
		return d.svc.SyncCustomerSubscription(ctx, ev.CustomerID)
	case SubscriptionDeleted:
		return d.svc.MarkSubscriptionCanceled(ctx, ev.CustomerID)
	case InvoicePaymentSucceeded:
		if ev.SubscriptionID == "" {
			return nil
		}
		return d.svc.SyncCustomerSubscription(ctx, ev.CustomerID)
	case InvoicePaymentFailed:
		if ev.SubscriptionID == "" {
			return nil
		}
		return d.svc.SyncCustomerSubscription(ctx, ev.CustomerID)
	case Unrecognized:
		log.Printf("billing: unhandled event type: %s", ev.Type)
		return nil
	default:
		return nil
	}
}
