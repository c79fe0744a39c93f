package listorders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	gotFilter *order.QueryOrdersModel
	gotExpand order.QueryExpansion
	result    []order.Order
	err       error
}

func (s *stubService) GetOrders(
	_ context.Context,
	filter *order.QueryOrdersModel,
	expand order.QueryExpansion,
) ([]order.Order, error) {
	s.gotFilter = filter
	s.gotExpand = expand
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestListOrders_Ok(t *testing.T) {
	svc := &stubService{result: []order.Order{{ID: 2}, {ID: 1}}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

	ListOrders(rec, req, svc)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []order.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)

	assert.True(t, svc.gotExpand.User, "list always expands the user summary")
	assert.False(t, svc.gotExpand.Products)
}

func TestListOrders_DecodesFilters(t *testing.T) {
	svc := &stubService{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/orders?userIds=7&userIds=8&limit=10&offset=20&expandProducts=true", nil)

	ListOrders(rec, req, svc)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotFilter)
	assert.Equal(t, []int64{7, 8}, svc.gotFilter.UserIds)
	assert.Equal(t, 10, svc.gotFilter.Limit)
	assert.Equal(t, 20, svc.gotFilter.Offset)
	assert.True(t, svc.gotExpand.Products)
}

func TestListOrders_BadQuery(t *testing.T) {
	svc := &stubService{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?limit=abc", nil)

	ListOrders(rec, req, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
