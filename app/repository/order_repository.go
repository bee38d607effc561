package repository

import (
	"github.com/confeitapro/confeitapro/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order in the database
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID retrieves an order by ID, scoped to the owning user
func (r *orderRepository) GetByID(userID, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").Where("user_id = ?", userID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByReference retrieves an order by its public reference
func (r *orderRepository) GetByReference(userID uint, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").
		Where("user_id = ? AND reference = ?", userID, reference).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUserID retrieves all orders of a user, optionally filtered by status
func (r *orderRepository) ListByUserID(userID uint, status string) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Customer").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("delivery_date ASC, created_at DESC").Find(&orders).Error
	return orders, err
}

// ListByCustomerID retrieves all orders of a user placed by one customer
func (r *orderRepository) ListByCustomerID(userID, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("user_id = ? AND customer_id = ?", userID, customerID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// Update updates an existing order in the database
func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateStatus moves an order to a new status, scoped to the owning user
func (r *orderRepository) UpdateStatus(userID, id uint, status string) error {
	result := r.db.Model(&models.Order{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes an order, scoped to the owning user
func (r *orderRepository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByUserID returns the number of orders for a specific user
func (r *orderRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByUserIDAndStatus returns the number of orders in one status
func (r *orderRepository) CountByUserIDAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}
