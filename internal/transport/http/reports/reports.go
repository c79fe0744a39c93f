package reports

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storefront-labs/order/internal/transport/http/httperr"
)

type service interface {
	TotalSales(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type totalSalesResponse struct {
	TotalSales int64 `json:"totalSales"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// TotalSales reports the sum of all order totals, in cents.
func TotalSales(w http.ResponseWriter, r *http.Request, service service) {
	total, err := service.TotalSales(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting total sales", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(totalSalesResponse{TotalSales: total}); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Count reports the number of orders.
func Count(w http.ResponseWriter, r *http.Request, service service) {
	count, err := service.Count(r.Context())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order count", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(countResponse{Count: count}); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
