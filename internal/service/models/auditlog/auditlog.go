package auditlog

import (
	"time"

	"github.com/storefront-labs/order/internal/service/models/order"
)

// OrderCreatedEvent is the audit envelope published when an order is
// persisted. EventID is a uuid so downstream consumers can deduplicate.
type OrderCreatedEvent struct {
	EventID         string      `json:"event_id"`
	OrderID         int64       `json:"order_id"`
	UserID          int64       `json:"user_id"`
	Status          string      `json:"status"`
	TotalPriceCents int64       `json:"total_price_cents"`
	ItemCount       int         `json:"item_count"`
	DateOrdered     time.Time   `json:"date_ordered"`
	EmittedAt       time.Time   `json:"emitted_at"`
	Order           order.Order `json:"order"`
}
