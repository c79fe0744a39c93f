package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/transport/http/httperr"
)

type service interface {
	GetOrders(
		ctx context.Context,
		filter *order.QueryOrdersModel,
		expand order.QueryExpansion,
	) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids            []int64 `schema:"ids,omitempty"`
	UserIds        []int64 `schema:"userIds,omitempty"`
	Limit          int     `schema:"limit,omitempty"`
	Offset         int     `schema:"offset,omitempty"`
	ExpandProducts bool    `schema:"expandProducts,omitempty"`
}

func (q *queryOrdersRequest) ToModel() *order.QueryOrdersModel {
	return &order.QueryOrdersModel{
		Ids:     q.Ids,
		UserIds: q.UserIds,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}

// ListOrders returns orders newest first with user and items expanded.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders, err := service.GetOrders(r.Context(), query.ToModel(), order.QueryExpansion{
		User:     true,
		Products: query.ExpandProducts,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
