package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error)
}

type cartLineRequest struct {
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

type createOrderRequest struct {
	ShippingAddress1 string            `json:"shippingAddress1"`
	ShippingAddress2 string            `json:"shippingAddress2"`
	City             string            `json:"city"`
	Zip              string            `json:"zip"`
	Country          string            `json:"country"`
	Phone            string            `json:"phone"`
	User             int64             `json:"user"`
	OrderItems       []cartLineRequest `json:"orderItems"`
}

func (req *createOrderRequest) ToDraft() order.Draft {
	lines := make([]order.CartLine, len(req.OrderItems))
	for i, item := range req.OrderItems {
		lines[i] = order.CartLine{
			ProductID: item.Product,
			Quantity:  item.Quantity,
		}
	}

	return order.Draft{
		UserID:           req.User,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Lines:            lines,
	}
}

// CreateOrder handles order submission.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), req.ToDraft())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}
