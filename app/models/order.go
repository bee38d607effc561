package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
)

var (
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrEmptyOrderItems    = errors.New("order needs at least one item")
)

// OrderItem is a single line of an order. Lines are denormalized: name and
// unit price are captured at order time so later product edits do not
// rewrite history.
type OrderItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is a confectionery order placed by a customer, scoped to the owning
// user.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Reference    string          `gorm:"type:varchar(36);uniqueIndex" json:"reference"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	CustomerID   uint            `gorm:"not null;index" json:"customer_id"`
	Customer     *Customer       `json:"customer,omitempty"`
	ItemsJSON    string          `gorm:"column:items;type:json;not null" json:"-"`
	DeliveryDate time.Time       `gorm:"type:date;not null" json:"delivery_date"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes        string          `gorm:"type:text" json:"notes"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate assigns a public reference for the order.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Reference == "" {
		o.Reference = uuid.NewString()
	}
	return nil
}

// Items decodes the stored order lines.
func (o *Order) Items() ([]OrderItem, error) {
	if o.ItemsJSON == "" {
		return nil, nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetItems encodes the order lines and recomputes the total.
func (o *Order) SetItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyOrderItems
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.ItemsJSON = string(raw)
	o.Total = total
	return nil
}

// IsValidOrderStatus reports whether s is one of the known order statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return true
	default:
		return false
	}
}
