package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/storefront-labs/order/internal/service/models/currency"
	"github.com/storefront-labs/order/internal/service/models/orderitem"
	"github.com/storefront-labs/order/internal/userdir"
)

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrEmptyOrder is returned when a submitted cart has no lines.
	ErrEmptyOrder = errors.New("order must contain at least one line item")
)

// ErrMissingField reports an absent required shipping field.
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Order represents a customer order in the system.
type Order struct {
	ID                 int64                 `json:"id"`
	UserID             int64                 `json:"userId"`
	ShippingAddress1   string                `json:"shippingAddress1"`
	ShippingAddress2   string                `json:"shippingAddress2,omitempty"`
	City               string                `json:"city"`
	Zip                string                `json:"zip"`
	Country            string                `json:"country"`
	Phone              string                `json:"phone"`
	Status             Status                `json:"status"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	DateOrdered        time.Time             `json:"dateOrdered"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderItems         []orderitem.OrderItem `json:"orderItems"`

	// User is the expanded directory summary. Populated on reads only,
	// never persisted.
	User *userdir.User `json:"user,omitempty"`
}

// Draft is the submitted cart: shipping fields, the ordering user and the
// cart lines, in submission order.
type Draft struct {
	UserID           int64
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Lines            []CartLine
}

// CartLine is one product/quantity pairing within a submitted cart.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// Validate checks the draft shape before any pricing or persistence happens.
func (d *Draft) Validate() error {
	if len(d.Lines) == 0 {
		return ErrEmptyOrder
	}
	for _, line := range d.Lines {
		if line.Quantity <= 0 {
			return orderitem.ErrInvalidQuantity
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"shippingAddress1", d.ShippingAddress1},
		{"city", d.City},
		{"zip", d.Zip},
		{"country", d.Country},
		{"phone", d.Phone},
	}
	for _, f := range required {
		if f.value == "" {
			return &ErrMissingField{Field: f.name}
		}
	}

	return nil
}
