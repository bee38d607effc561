package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSetItemsComputesTotal(t *testing.T) {
	order := &Order{}
	err := order.SetItems([]OrderItem{
		{ProductID: 1, Name: "Bolo de chocolate", Quantity: 2, UnitPrice: decimal.RequireFromString("45.50")},
		{ProductID: 2, Name: "Brigadeiro", Quantity: 10, UnitPrice: decimal.RequireFromString("3.25")},
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("123.50")),
		"total = %s", order.Total)

	items, err := order.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bolo de chocolate", items[0].Name)
	assert.True(t, items[1].UnitPrice.Equal(decimal.RequireFromString("3.25")))
}

func TestOrderSetItemsEmpty(t *testing.T) {
	order := &Order{}
	err := order.SetItems(nil)
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
}

func TestOrderItemsEmptyJSON(t *testing.T) {
	order := &Order{}
	items, err := order.Items()
	assert.NoError(t, err)
	assert.Nil(t, items)
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered} {
		assert.True(t, IsValidOrderStatus(status), status)
	}
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestProductValidateNegativePrice(t *testing.T) {
	product := &Product{
		UserID: 1,
		Name:   "Torta de limão",
		Price:  decimal.RequireFromString("-1.00"),
	}
	assert.ErrorIs(t, product.Validate(), ErrNegativePrice)
}

func TestCustomerValidate(t *testing.T) {
	customer := &Customer{UserID: 1, Name: "João", Phone: "11999990000"}
	assert.NoError(t, customer.Validate())

	customer.Name = ""
	assert.Error(t, customer.Validate())
}
