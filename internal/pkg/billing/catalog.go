package billing

import "github.com/shopspring/decimal"

// Checkout modes supported by the catalog.
const (
	CheckoutModeSubscription = "subscription"
	CheckoutModePayment      = "payment"
)

// CatalogProduct is a purchasable plan or one-time product mapped to a
// Stripe price.
type CatalogProduct struct {
	ID          string          `json:"id"`
	PriceID     string          `json:"price_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Mode        string          `json:"mode"`
	Price       decimal.Decimal `json:"price"`
}

var catalog = []CatalogProduct{
	{
		ID:          "prod_SpBp9TXUPpeJOx",
		PriceID:     "price_1RtXReB1cuFGKX9I4vixfuC7",
		Name:        "Gestão Confeitaria 4.0",
		Description: "Gestão e controle de produto e clientes.",
		Mode:        CheckoutModeSubscription,
		Price:       decimal.RequireFromString("19.90"),
	},
}

// Catalog returns all purchasable products.
func Catalog() []CatalogProduct {
	out := make([]CatalogProduct, len(catalog))
	copy(out, catalog)
	return out
}

// ProductByPriceID looks up a catalog product by its Stripe price id.
func ProductByPriceID(priceID string) (CatalogProduct, bool) {
	for _, p := range catalog {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return CatalogProduct{}, false
}
