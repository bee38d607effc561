package repository

import (
	"github.com/confeitapro/confeitapro/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// CustomerRepository defines the interface for customer-related database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(userID, id uint) (*models.Customer, error)
	ListByUserID(userID uint) ([]models.Customer, error)
	Search(userID uint, query string) ([]models.Customer, error)
	Update(customer *models.Customer) error
	Delete(userID, id uint) error
	CountByUserID(userID uint) (int64, error)
}

// ProductRepository defines the interface for product-related database operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(userID, id uint) (*models.Product, error)
	ListByUserID(userID uint) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(userID, id uint) error
	CountByUserID(userID uint) (int64, error)
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(userID, id uint) (*models.Order, error)
	GetByReference(userID uint, reference string) (*models.Order, error)
	ListByUserID(userID uint, status string) ([]models.Order, error)
	ListByCustomerID(userID, customerID uint) ([]models.Order, error)
	Update(order *models.Order) error
	UpdateStatus(userID, id uint, status string) error
	Delete(userID, id uint) error
	CountByUserID(userID uint) (int64, error)
	CountByUserIDAndStatus(userID uint, status string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Customer CustomerRepository
	Product  ProductRepository
	Order    OrderRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Customer: NewCustomerRepository(db),
		Product:  NewProductRepository(db),
		Order:    NewOrderRepository(db),
	}
}
