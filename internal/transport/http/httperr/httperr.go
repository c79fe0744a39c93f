package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/service/models/orderitem"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	var missing *order.ErrMissingField

	switch {
	case errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrProductUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, orderitem.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.As(err, &missing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Write sends the error as a JSON body with the mapped status.
func Write(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(err))
	_ = json.NewEncoder(w).Encode(errorResponse{Success: false, Message: err.Error()})
}
