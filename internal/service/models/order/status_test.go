package order_test

import (
	"testing"

	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{
		order.StatusPending,
		order.StatusProcessed,
		order.StatusShipped,
		order.StatusDelivered,
	} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "cancelled", "Pending", "SHIPPED"} {
		_, err := order.ParseStatus(s)
		assert.ErrorIs(t, err, order.ErrInvalidStatus, "input %q", s)
	}
}
