package orderitem

import (
	"errors"
	"time"

	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/service/models/currency"
)

// ErrInvalidQuantity is returned for a cart line with quantity <= 0.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// OrderItem represents one line within an order. PriceCents is the unit
// price snapshot taken from the catalog at assembly time; it is never
// recomputed afterwards.
type OrderItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	ProductID     int64             `json:"productId"`
	Quantity      int               `json:"quantity"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`

	// Product is the expanded catalog summary. Populated on reads only,
	// never persisted.
	Product *catalog.Product `json:"product,omitempty"`
}

// SubtotalCents is the line contribution to the order total.
func (oi *OrderItem) SubtotalCents() int64 {
	return int64(oi.Quantity) * oi.PriceCents
}
