package userhistory

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
	UserHistory(ctx context.Context, userID int64) ([]order.Order, error)
}

// UserHistory returns a user's orders newest first, fully expanded.
func UserHistory(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)

		return
	}

	orders, err := service.UserHistory(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting user order history", "user_id", userID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
