package repository

import (
	"github.com/confeitapro/confeitapro/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product in the database
func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// GetByID retrieves a product by ID, scoped to the owning user
func (r *productRepository) GetByID(userID, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("user_id = ?", userID).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByUserID retrieves all products belonging to a specific user
func (r *productRepository) ListByUserID(userID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").Find(&products).Error
	return products, err
}

// Update updates an existing product in the database
func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft deletes a product, scoped to the owning user
func (r *productRepository) Delete(userID, id uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByUserID returns the number of products for a specific user
func (r *productRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
