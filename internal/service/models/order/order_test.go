package order_test

import (
	"testing"

	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() order.Draft {
	return order.Draft{
		UserID:           7,
		ShippingAddress1: "1 Main St",
		ShippingAddress2: "Apt 4",
		City:             "Springfield",
		Zip:              "12345",
		Country:          "US",
		Phone:            "555-0100",
		Lines: []order.CartLine{
			{ProductID: 1, Quantity: 1},
		},
	}
}

func TestDraftValidate_Ok(t *testing.T) {
	draft := validDraft()
	require.NoError(t, draft.Validate())
}

func TestDraftValidate_Address2Optional(t *testing.T) {
	draft := validDraft()
	draft.ShippingAddress2 = ""
	require.NoError(t, draft.Validate())
}

func TestDraftValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(d *order.Draft)
		want error
	}{
		{
			name: "empty cart",
			mut:  func(d *order.Draft) { d.Lines = nil },
			want: order.ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			mut:  func(d *order.Draft) { d.Lines[0].Quantity = 0 },
			want: orderitem.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			mut:  func(d *order.Draft) { d.Lines[0].Quantity = -2 },
			want: orderitem.ErrInvalidQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mut(&draft)
			assert.ErrorIs(t, draft.Validate(), tc.want)
		})
	}
}

func TestDraftValidate_MissingFields(t *testing.T) {
	cases := []struct {
		field string
		mut   func(d *order.Draft)
	}{
		{"shippingAddress1", func(d *order.Draft) { d.ShippingAddress1 = "" }},
		{"city", func(d *order.Draft) { d.City = "" }},
		{"zip", func(d *order.Draft) { d.Zip = "" }},
		{"country", func(d *order.Draft) { d.Country = "" }},
		{"phone", func(d *order.Draft) { d.Phone = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			draft := validDraft()
			tc.mut(&draft)

			var missing *order.ErrMissingField
			err := draft.Validate()
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
		})
	}
}
