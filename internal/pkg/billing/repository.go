package billing

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/confeitapro/confeitapro/app/models"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	GetCustomerLinkByCustomerID(customerID string) (*models.StripeCustomer, error)
	GetCustomerLinkByUserID(userID uint) (*models.StripeCustomer, error)
	CreateCustomerLink(link *models.StripeCustomer) error
	UpsertSnapshot(snap *models.StripeSubscription) error
	SetSnapshotStatus(customerID, status string) error
	GetSnapshotByCustomerID(customerID string) (*models.StripeSubscription, error)
	CreateOrderIfNotExists(order *models.StripeOrder) (bool, error)
	ListOrdersByCustomerID(customerID string) ([]models.StripeOrder, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetCustomerLinkByCustomerID(customerID string) (*models.StripeCustomer, error) {
	var link models.StripeCustomer
	// Soft-deleted links are filtered by GORM's deleted_at handling.
	err := r.db.Where("customer_id = ?", customerID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *gormRepository) GetCustomerLinkByUserID(userID uint) (*models.StripeCustomer, error) {
	var link models.StripeCustomer
	err := r.db.Where("user_id = ?", userID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *gormRepository) CreateCustomerLink(link *models.StripeCustomer) error {
	return r.db.Create(link).Error
}

func (r *gormRepository) UpsertSnapshot(snap *models.StripeSubscription) error {
	// Unconditional overwrite keyed by customer id. There is deliberately no
	// compare-and-swap on updated_at: the reconciler always writes freshly
	// re-fetched provider state, so the last completed write wins.
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_id",
			"price_id",
			"current_period_start",
			"current_period_end",
			"cancel_at_period_end",
			"payment_method_brand",
			"payment_method_last4",
			"status",
			"updated_at",
		}),
	}).Create(snap).Error
}

func (r *gormRepository) SetSnapshotStatus(customerID, status string) error {
	return r.db.Model(&models.StripeSubscription{}).
		Where("customer_id = ?", customerID).
		Update("status", status).Error
}

func (r *gormRepository) GetSnapshotByCustomerID(customerID string) (*models.StripeSubscription, error) {
	var snap models.StripeSubscription
	err := r.db.Where("customer_id = ?", customerID).First(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *gormRepository) CreateOrderIfNotExists(order *models.StripeOrder) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "checkout_session_id"},
		},
		DoNothing: true,
	}).Create(order)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) ListOrdersByCustomerID(customerID string) ([]models.StripeOrder, error) {
	var orders []models.StripeOrder
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}
