package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/confeitapro/confeitapro/app/models"
)

// Service reconciles Stripe subscription and order state into local tables.
// All writes to the snapshot table go through here.
type Service struct {
	repo     Repository
	provider ProviderAPI
}

// NewService creates a billing service from injected dependencies.
func NewService(repo Repository, provider ProviderAPI) *Service {
	return &Service{repo: repo, provider: provider}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, provider ProviderAPI) *Service {
	return NewService(NewRepository(db), provider)
}

// SyncCustomerSubscription re-derives the local snapshot for a customer
// from Stripe's authoritative state. Webhook payloads can be stale or
// arrive out of order, so the event that triggered the call is irrelevant:
// the provider is always re-queried and the full snapshot overwritten.
// Running it twice with unchanged provider state is a no-op by construction.
func (s *Service) SyncCustomerSubscription(ctx context.Context, customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return nil
	}

	if _, err := s.repo.GetCustomerLinkByCustomerID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Events can arrive for customers created through flows this
			// system never persisted. That is a successful skip, not an
			// error: retrying the delivery would not help.
			log.Printf("billing: customer %s not linked, skipping sync", customerID)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sub, err := s.provider.LatestSubscription(ctx, customerID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamQuery, err)
	}

	snap := buildSnapshot(customerID, sub)
	if err := s.repo.UpsertSnapshot(snap); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// MarkSubscriptionCanceled is the direct cancellation path for
// customer.subscription.deleted. A deleted subscription may no longer be
// queryable from Stripe, so the status is written without a re-fetch.
func (s *Service) MarkSubscriptionCanceled(ctx context.Context, customerID string) error {
	_ = ctx
	if strings.TrimSpace(customerID) == "" {
		return nil
	}
	if err := s.repo.SetSnapshotStatus(customerID, models.SubscriptionStatusCanceled); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// RecordOrder inserts the order row for a completed one-time checkout.
// Redelivered events hit the unique checkout session id and are ignored.
func (s *Service) RecordOrder(ctx context.Context, in OrderInput) error {
	_ = ctx
	if strings.TrimSpace(in.CheckoutSessionID) == "" {
		return fmt.Errorf("checkout session id is required")
	}

	order := &models.StripeOrder{
		CheckoutSessionID: in.CheckoutSessionID,
		PaymentIntentID:   in.PaymentIntentID,
		CustomerID:        in.CustomerID,
		AmountSubtotal:    in.AmountSubtotal,
		AmountTotal:       in.AmountTotal,
		Currency:          in.Currency,
		PaymentStatus:     in.PaymentStatus,
		Status:            models.StripeOrderStatusCompleted,
	}

	created, err := s.repo.CreateOrderIfNotExists(order)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !created {
		log.Printf("billing: duplicate order delivery for session %s ignored", in.CheckoutSessionID)
	}
	return nil
}

// SnapshotForUser returns the current subscription snapshot for a local
// user, or nil when the user never checked out or has no snapshot yet.
func (s *Service) SnapshotForUser(ctx context.Context, userID uint) (*models.StripeSubscription, error) {
	_ = ctx
	link, err := s.repo.GetCustomerLinkByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	snap, err := s.repo.GetSnapshotByCustomerID(link.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return snap, nil
}

// EnsureCustomer returns the Stripe customer id linked to the user,
// creating the customer and the local link on first checkout.
func (s *Service) EnsureCustomer(ctx context.Context, user *models.User) (string, error) {
	link, err := s.repo.GetCustomerLinkByUserID(user.ID)
	if err == nil {
		return link.CustomerID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	customerID, err := s.provider.CreateCustomer(ctx, user.Email, user.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamQuery, err)
	}

	if err := s.repo.CreateCustomerLink(&models.StripeCustomer{
		UserID:     user.ID,
		CustomerID: customerID,
	}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return customerID, nil
}

// OrdersForUser lists recorded one-time orders for a local user.
func (s *Service) OrdersForUser(ctx context.Context, userID uint) ([]models.StripeOrder, error) {
	_ = ctx
	link, err := s.repo.GetCustomerLinkByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	orders, err := s.repo.ListOrdersByCustomerID(link.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return orders, nil
}

func buildSnapshot(customerID string, sub *CustomerSubscription) *models.StripeSubscription {
	snap := &models.StripeSubscription{
		CustomerID: customerID,
		Status:     models.SubscriptionStatusNotStarted,
	}
	if sub == nil {
		// No subscription exists at all; distinct from canceled.
		return snap
	}

	subID := sub.SubscriptionID
	snap.SubscriptionID = &subID
	if sub.PriceID != "" {
		priceID := sub.PriceID
		snap.PriceID = &priceID
	}
	periodStart := sub.CurrentPeriodStart
	periodEnd := sub.CurrentPeriodEnd
	snap.CurrentPeriodStart = &periodStart
	snap.CurrentPeriodEnd = &periodEnd
	snap.CancelAtPeriodEnd = sub.CancelAtPeriodEnd
	snap.Status = sub.Status

	if card, ok := sub.PaymentMethod.(PaymentMethodCard); ok {
		brand := card.Brand
		last4 := card.Last4
		snap.PaymentMethodBrand = &brand
		snap.PaymentMethodLast4 = &last4
	}
	return snap
}
