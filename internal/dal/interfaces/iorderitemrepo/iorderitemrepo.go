package iorderitemrepo

import (
	"context"

	"github.com/storefront-labs/order/internal/service/models/orderitem"
)

// IOrderItemRepository is the interface for the order item postgres repository.
type IOrderItemRepository interface {
	// BulkInsert persists the items and returns them with assigned ids,
	// preserving input order.
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)

	// Query retrieves order items matching the filter.
	Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)

	// Delete removes a single item. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) error

	// DeleteByOrderIDs removes every item owned by the given orders.
	DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error
}
