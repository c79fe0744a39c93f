package iorderrepo

import (
	"context"

	"github.com/storefront-labs/order/internal/service/models/order"
)

// IOrderRepository is the interface for the order postgres repository.
type IOrderRepository interface {
	// Insert persists a new order row and returns it with the assigned id.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// Query retrieves orders matching the filter, newest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatus replaces the status of an order. Returns order.ErrNotFound
	// if the order does not exist.
	UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error)

	// Delete removes an order row and returns the deleted order. Returns
	// order.ErrNotFound if the order does not exist.
	Delete(ctx context.Context, id int64) (*order.Order, error)

	// TotalSalesCents sums total_price_cents across all orders; 0 when empty.
	TotalSalesCents(ctx context.Context) (int64, error)

	// Count returns the number of order rows.
	Count(ctx context.Context) (int64, error)
}
