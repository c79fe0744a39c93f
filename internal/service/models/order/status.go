package order

import (
	"database/sql/driver"
	"errors"
)

// Status is the order lifecycle state. The set is closed; any member may
// replace any other on update (no forward-only machine is enforced).
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPending.String():
		return StatusPending, nil
	case StatusProcessed.String():
		return StatusProcessed, nil
	case StatusShipped.String():
		return StatusShipped, nil
	case StatusDelivered.String():
		return StatusDelivered, nil
	default:
		return "", ErrInvalidStatus
	}
}
