package repository

import (
	"github.com/confeitapro/confeitapro/app/models"
	"gorm.io/gorm"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer in the database
func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID retrieves a customer by ID, scoped to the owning user
func (r *customerRepository) GetByID(userID, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("user_id = ?", userID).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListByUserID retrieves all customers belonging to a specific user
func (r *customerRepository) ListByUserID(userID uint) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").Find(&customers).Error
	return customers, err
}

// Search retrieves customers of a user matching a name or phone fragment
func (r *customerRepository) Search(userID uint, query string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + query + "%"
	err := r.db.Where("user_id = ? AND (name LIKE ? OR phone LIKE ?)", userID, pattern, pattern).
		Order("name ASC").Find(&customers).Error
	return customers, err
}

// Update updates an existing customer in the database
func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete soft deletes a customer, scoped to the owning user
func (r *customerRepository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByUserID returns the number of customers for a specific user
func (r *customerRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
