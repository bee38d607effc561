package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Customer is an end customer of a confectionery business, scoped to the
// owning user.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Phone     string         `gorm:"type:varchar(30);not null" json:"phone" validate:"required,min=1,max=30"`
	Orders    []Order        `json:"orders,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
