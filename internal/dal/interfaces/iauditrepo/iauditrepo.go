package iauditrepo

import (
	"context"

	"github.com/storefront-labs/order/internal/service/models/order"
)

// IAuditRepository is the interface for the order audit event publisher.
type IAuditRepository interface {
	LogOrderCreated(ctx context.Context, o order.Order) error
}
