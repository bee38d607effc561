package models

import (
	"time"

	"gorm.io/gorm"
)

const StripeOrderStatusCompleted = "completed"

// StripeOrder records a completed one-time checkout. Immutable once
// inserted; the checkout session id is unique so redelivered webhooks
// cannot create a second row.
type StripeOrder struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CheckoutSessionID string         `gorm:"type:varchar(191);not null;uniqueIndex" json:"checkout_session_id"`
	PaymentIntentID   string         `gorm:"type:varchar(191);not null" json:"payment_intent_id"`
	CustomerID        string         `gorm:"type:varchar(191);not null;index" json:"customer_id"`
	AmountSubtotal    int64          `gorm:"not null" json:"amount_subtotal"`
	AmountTotal       int64          `gorm:"not null" json:"amount_total"`
	Currency          string         `gorm:"type:varchar(10);not null" json:"currency"`
	PaymentStatus     string         `gorm:"type:varchar(32);not null" json:"payment_status"`
	Status            string         `gorm:"type:varchar(32);not null;default:'completed'" json:"status"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
