package deleteorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/transport/http/httperr"
)

type service interface {
	DeleteOrder(ctx context.Context, id int64) (*order.Order, error)
}

type deleteOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteOrder deletes an order and all of its line items.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)

		return
	}

	if _, err := service.DeleteOrder(r.Context(), id); err != nil {
		httperr.Write(w, err)
		slog.Error("Error deleting order", "order_id", id, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := deleteOrderResponse{Success: true, Message: "The order has been deleted"}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
