package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	totalSales int64
	count      int64
}

func (s *stubService) TotalSales(_ context.Context) (int64, error) { return s.totalSales, nil }
func (s *stubService) Count(_ context.Context) (int64, error)      { return s.count, nil }

func TestTotalSales(t *testing.T) {
	svc := &stubService{totalSales: 4799}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/reports/total-sales", nil)

	TotalSales(rec, req, svc)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(4799), body["totalSales"])
}

func TestTotalSales_EmptyStore(t *testing.T) {
	svc := &stubService{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/reports/total-sales", nil)

	TotalSales(rec, req, svc)

	assert.Equal(t, http.StatusOK, rec.Code, "zero orders is a zero report, not an error")

	var body map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(0), body["totalSales"])
}

func TestCount(t *testing.T) {
	svc := &stubService{count: 3}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/reports/count", nil)

	Count(rec, req, svc)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(3), body["count"])
}
