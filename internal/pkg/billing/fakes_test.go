package billing

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/confeitapro/confeitapro/app/models"
)

// fakeRepository is an in-memory Repository double for service tests.
type fakeRepository struct {
	linksByCustomerID map[string]*models.StripeCustomer
	linksByUserID     map[uint]*models.StripeCustomer
	snapshots         map[string]*models.StripeSubscription
	orders            map[string]*models.StripeOrder

	failLinks     error
	failSnapshots error
	failOrders    error

	snapshotWrites int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		linksByCustomerID: make(map[string]*models.StripeCustomer),
		linksByUserID:     make(map[uint]*models.StripeCustomer),
		snapshots:         make(map[string]*models.StripeSubscription),
		orders:            make(map[string]*models.StripeOrder),
	}
}

func (r *fakeRepository) addLink(userID uint, customerID string) {
	link := &models.StripeCustomer{UserID: userID, CustomerID: customerID}
	r.linksByCustomerID[customerID] = link
	r.linksByUserID[userID] = link
}

func (r *fakeRepository) GetCustomerLinkByCustomerID(customerID string) (*models.StripeCustomer, error) {
	if r.failLinks != nil {
		return nil, r.failLinks
	}
	link, ok := r.linksByCustomerID[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return link, nil
}

func (r *fakeRepository) GetCustomerLinkByUserID(userID uint) (*models.StripeCustomer, error) {
	if r.failLinks != nil {
		return nil, r.failLinks
	}
	link, ok := r.linksByUserID[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return link, nil
}

func (r *fakeRepository) CreateCustomerLink(link *models.StripeCustomer) error {
	if r.failLinks != nil {
		return r.failLinks
	}
	r.linksByCustomerID[link.CustomerID] = link
	r.linksByUserID[link.UserID] = link
	return nil
}

func (r *fakeRepository) UpsertSnapshot(snap *models.StripeSubscription) error {
	if r.failSnapshots != nil {
		return r.failSnapshots
	}
	r.snapshotWrites++
	stored := *snap
	r.snapshots[snap.CustomerID] = &stored
	return nil
}

func (r *fakeRepository) SetSnapshotStatus(customerID, status string) error {
	if r.failSnapshots != nil {
		return r.failSnapshots
	}
	if snap, ok := r.snapshots[customerID]; ok {
		snap.Status = status
	}
	return nil
}

func (r *fakeRepository) GetSnapshotByCustomerID(customerID string) (*models.StripeSubscription, error) {
	if r.failSnapshots != nil {
		return nil, r.failSnapshots
	}
	snap, ok := r.snapshots[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return snap, nil
}

func (r *fakeRepository) CreateOrderIfNotExists(order *models.StripeOrder) (bool, error) {
	if r.failOrders != nil {
		return false, r.failOrders
	}
	if _, ok := r.orders[order.CheckoutSessionID]; ok {
		return false, nil
	}
	stored := *order
	r.orders[order.CheckoutSessionID] = &stored
	return true, nil
}

func (r *fakeRepository) ListOrdersByCustomerID(customerID string) ([]models.StripeOrder, error) {
	if r.failOrders != nil {
		return nil, r.failOrders
	}
	var out []models.StripeOrder
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

// fakeProvider is a ProviderAPI double whose subscription answer can be
// swapped between calls to simulate state changing under redelivery.
type fakeProvider struct {
	sub       *CustomerSubscription
	err       error
	listCalls int
	created   int
}

func (p *fakeProvider) LatestSubscription(ctx context.Context, customerID string) (*CustomerSubscription, error) {
	p.listCalls++
	if p.err != nil {
		return nil, p.err
	}
	if p.sub == nil {
		return nil, nil
	}
	copied := *p.sub
	return &copied, nil
}

func (p *fakeProvider) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.created++
	return fmt.Sprintf("cus_fake_%d", p.created), nil
}

var errBoom = errors.New("boom")
