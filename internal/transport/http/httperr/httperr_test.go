package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", order.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", order.ErrNotFound), http.StatusNotFound},
		{"empty order", order.ErrEmptyOrder, http.StatusBadRequest},
		{"invalid quantity", orderitem.ErrInvalidQuantity, http.StatusBadRequest},
		{"invalid status", order.ErrInvalidStatus, http.StatusBadRequest},
		{"missing field", &order.ErrMissingField{Field: "city"}, http.StatusBadRequest},
		{"product unavailable", catalog.ErrProductUnavailable, http.StatusUnprocessableEntity},
		{
			"wrapped product unavailable",
			fmt.Errorf("resolve price of product 9: %w", catalog.ErrProductUnavailable),
			http.StatusUnprocessableEntity,
		},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}
