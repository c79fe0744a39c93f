package reportsvc

import (
	"context"

	"github.com/storefront-labs/order/internal/dal/interfaces/iorderrepo"
	"github.com/storefront-labs/order/internal/dal/postgres"
	orderrepo "github.com/storefront-labs/order/internal/dal/repositories/order/postgres"
	"github.com/storefront-labs/order/internal/service/models/order"
)

// historySource lists a user's expanded orders. The order service provides
// this; reporting does not re-implement expansion.
type historySource interface {
	UserHistory(ctx context.Context, userID int64) ([]order.Order, error)
}

// ReportService answers aggregate questions over the order store.
type ReportService struct {
	orderRepo iorderrepo.IOrderRepository
	history   historySource
}

// option is a function that configures the ReportService.
type option func(*ReportService)

// MustNewReportService creates a new ReportService.
func MustNewReportService(opts ...option) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil {
		panic("reportsvc: no order repository configured")
	}

	return s
}

// WithPostgresClient backs the reports with the Postgres order repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ReportService) {
		s.orderRepo = orderrepo.NewPostgresOrderRepository(pgClient.Pool())
	}
}

// WithOrderRepository sets the order repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *ReportService) {
		s.orderRepo = repo
	}
}

// WithHistorySource sets the per-user history provider.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithHistorySource(src historySource) option {
	return func(s *ReportService) {
		s.history = src
	}
}

// TotalSales sums totalPrice across all orders, in cents. An empty store
// reports 0, not an error.
func (s *ReportService) TotalSales(ctx context.Context) (int64, error) {
	return s.orderRepo.TotalSalesCents(ctx)
}

// Count returns the number of orders in the store.
func (s *ReportService) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

// UserHistory returns a user's orders newest first, fully expanded.
func (s *ReportService) UserHistory(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.history.UserHistory(ctx, userID)
}
