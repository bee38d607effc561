package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable confectionery item, scoped to the owning user.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Name      string          `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) Validate() error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	v := validator.New()

	return v.Struct(p)
}
