package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription status values this application writes itself. The provider
// may report further values ("trialing", "past_due", ...); the status column
// is an open string and unknown values are tolerated on the read side.
const (
	SubscriptionStatusNotStarted = "not_started"
	SubscriptionStatusIncomplete = "incomplete"
	SubscriptionStatusActive     = "active"
	SubscriptionStatusCanceled   = "canceled"
)

// StripeSubscription is the single current-truth snapshot of a Stripe
// customer's subscription, replaced wholesale on each reconciliation.
// One row per customer; the customer id is the conflict target for upserts.
type StripeSubscription struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CustomerID         string         `gorm:"type:varchar(191);not null;uniqueIndex" json:"customer_id"`
	SubscriptionID     *string        `gorm:"type:varchar(191)" json:"subscription_id"`
	PriceID            *string        `gorm:"type:varchar(191)" json:"price_id"`
	CurrentPeriodStart *int64         `json:"current_period_start"`
	CurrentPeriodEnd   *int64         `json:"current_period_end"`
	CancelAtPeriodEnd  bool           `gorm:"default:false" json:"cancel_at_period_end"`
	PaymentMethodBrand *string        `gorm:"type:varchar(32)" json:"payment_method_brand"`
	PaymentMethodLast4 *string        `gorm:"type:varchar(4)" json:"payment_method_last4"`
	Status             string         `gorm:"type:varchar(32);not null" json:"status"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
