package models

import (
	"time"

	"gorm.io/gorm"
)

// StripeCustomer links a local user to a Stripe customer. Created once per
// user on first checkout. Rows are soft-deleted, never removed: the webhook
// path must be able to distinguish "never linked" from "unlinked".
type StripeCustomer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	CustomerID string         `gorm:"type:varchar(191);not null;uniqueIndex" json:"customer_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
