package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/dal/interfaces/iauditrepo"
	"github.com/storefront-labs/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/storefront-labs/order/internal/dal/interfaces/iorderrepo"
	"github.com/storefront-labs/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/storefront-labs/order/internal/dal/postgres"
	"github.com/storefront-labs/order/internal/dal/repositories/audit"
	"github.com/storefront-labs/order/internal/dal/uow"
	"github.com/storefront-labs/order/internal/service/models/currency"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/service/models/orderitem"
	"github.com/storefront-labs/order/internal/service/models/outbox"
	"github.com/storefront-labs/order/internal/service/pricer"
	"github.com/storefront-labs/order/internal/userdir"
)

// unitOfWork scopes order and item writes to one transaction.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// priceResolver resolves cart line unit prices against the catalog.
type priceResolver interface {
	ResolveAll(ctx context.Context, lines []order.CartLine) ([]pricer.LinePrice, error)
}

// OrderService owns the order lifecycle: assembly, retrieval with
// expansion, status updates and cascading deletion.
type OrderService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
	pricer     priceResolver
	catalog    catalog.Service
	userdir    userdir.Directory
	auditRepo  iauditrepo.IAuditRepository
	outboxRepo ioutboxrepo.IOutboxRepository
}

func (s *OrderService) newUOW() unitOfWork {
	return s.uowFactory()
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.uowFactory == nil {
		panic("ordersvc: no unit of work source configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkFactory overrides the unit of work source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// WithPriceResolver sets the price resolver.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPriceResolver(r priceResolver) option {
	return func(s *OrderService) {
		s.pricer = r
	}
}

// WithCatalog sets the catalog service used for product expansion.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c catalog.Service) option {
	return func(s *OrderService) {
		s.catalog = c
	}
}

// WithUserDirectory sets the user directory used for user expansion.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserDirectory(d userdir.Directory) option {
	return func(s *OrderService) {
		s.userdir = d
	}
}

// WithAuditRepository sets the audit event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(r iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.auditRepo = r
	}
}

// WithOutboxRepository sets the outbox fallback for audit events.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(r ioutboxrepo.IOutboxRepository) option {
	return func(s *OrderService) {
		s.outboxRepo = r
	}
}

// CreateOrder assembles and persists an order from a submitted cart.
//
// The draft is validated and priced fully in memory before anything touches
// the database; the order row and its items are then written inside one
// transaction. A pricing failure therefore leaves no rows behind, and a
// failed item insert rolls the order row back with it.
func (s *OrderService) CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	prices, err := s.pricer.ResolveAll(ctx, draft.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]orderitem.OrderItem, len(prices))
	for i, p := range prices {
		items[i] = orderitem.OrderItem{
			ProductID:     p.ProductID,
			Quantity:      p.Quantity,
			PriceCents:    p.PriceCents,
			PriceCurrency: currency.CurrencyUSD,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	draftOrder := order.Order{
		UserID:             draft.UserID,
		ShippingAddress1:   draft.ShippingAddress1,
		ShippingAddress2:   draft.ShippingAddress2,
		City:               draft.City,
		Zip:                draft.Zip,
		Country:            draft.Country,
		Phone:              draft.Phone,
		Status:             order.StatusPending,
		TotalPriceCents:    pricer.TotalCents(prices),
		TotalPriceCurrency: currency.CurrencyUSD,
		DateOrdered:        now,
		UpdatedAt:          now,
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(context.WithoutCancel(ctx)); err != nil {
			slog.Error("Rollback failed after order assembly error", "error", err)
		}
	}()

	inserted, err := work.OrderRepository().Insert(ctx, draftOrder)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}
	inserted.OrderItems = insertedItems

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.publishOrderCreated(ctx, *inserted)

	return inserted, nil
}

// publishOrderCreated emits the audit event, parking it in the outbox when
// the broker is unreachable. Never fails the request.
func (s *OrderService) publishOrderCreated(ctx context.Context, o order.Order) {
	if s.auditRepo == nil {
		return
	}

	err := s.auditRepo.LogOrderCreated(ctx, o)
	if err == nil {
		return
	}

	slog.Warn("Failed to publish order created event, falling back to outbox",
		"order_id", o.ID,
		"error", err,
	)

	if s.outboxRepo == nil {
		return
	}

	payload, marshalErr := json.Marshal(o)
	if marshalErr != nil {
		slog.Error("Failed to marshal order for outbox", "order_id", o.ID, "error", marshalErr)
		return
	}

	now := time.Now()
	msg := outbox.Message{
		QueueName:   audit.QueueOrderCreated,
		RoutingKey:  audit.QueueOrderCreated,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  10,
		LastError:   err.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
	if err := s.outboxRepo.Insert(context.WithoutCancel(ctx), msg); err != nil {
		slog.Error("Failed to insert order created event into outbox", "order_id", o.ID, "error", err)
	}
}

// GetOrders retrieves orders matching the filter, newest first, with their
// items attached and references expanded per the expansion settings.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter *order.QueryOrdersModel,
	expand order.QueryExpansion,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, len(orders))
	for i, o := range orders {
		orderIds[i] = o.ID
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: orderIds,
	})
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	if expand.User {
		s.expandUsers(ctx, orders)
	}
	if expand.Products {
		s.expandProducts(ctx, orders)
	}

	return orders, nil
}

// GetOrder retrieves a single order, fully expanded.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	orders, err := s.GetOrders(ctx,
		&order.QueryOrdersModel{Ids: []int64{id}},
		order.QueryExpansion{User: true, Products: true},
	)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, order.ErrNotFound
	}

	return &orders[0], nil
}

// UserHistory retrieves a user's orders newest first, fully expanded.
func (s *OrderService) UserHistory(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.GetOrders(ctx,
		&order.QueryOrdersModel{UserIds: []int64{userID}},
		order.QueryExpansion{User: true, Products: true},
	)
}

// UpdateStatus replaces the status of an order. Any member of the status
// enum may replace any other; items and total are never touched.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
) (*order.Order, error) {
	work := s.newUOW()
	return work.OrderRepository().UpdateStatus(ctx, id, status)
}

// DeleteOrder removes an order and cascades to its line items inside one
// transaction. Items already absent are not an error; no item outlives its
// order either way.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(context.WithoutCancel(ctx)); err != nil {
			slog.Error("Rollback failed after order delete error", "error", err)
		}
	}()

	if err := work.OrderItemRepository().DeleteByOrderIDs(ctx, []int64{id}); err != nil {
		return nil, err
	}

	deleted, err := work.OrderRepository().Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order delete: %w", err)
	}

	return deleted, nil
}

// expandUsers attaches directory summaries. Lookup failures degrade the
// response instead of failing it.
func (s *OrderService) expandUsers(ctx context.Context, orders []order.Order) {
	if s.userdir == nil {
		return
	}

	users := make(map[int64]*userdir.User)
	for i := range orders {
		userID := orders[i].UserID
		user, ok := users[userID]
		if !ok {
			var err error
			user, err = s.userdir.User(ctx, userID)
			if err != nil {
				slog.Warn("Failed to expand user on order", "user_id", userID, "error", err)
			}
			users[userID] = user
		}
		orders[i].User = user
	}
}

// expandProducts attaches catalog summaries to every item. Lookup failures
// degrade the response instead of failing it.
func (s *OrderService) expandProducts(ctx context.Context, orders []order.Order) {
	if s.catalog == nil {
		return
	}

	products := make(map[int64]*catalog.Product)
	for i := range orders {
		for j := range orders[i].OrderItems {
			productID := orders[i].OrderItems[j].ProductID
			product, ok := products[productID]
			if !ok {
				var err error
				product, err = s.catalog.Product(ctx, productID)
				if err != nil {
					slog.Warn("Failed to expand product on order item", "product_id", productID, "error", err)
				}
				products[productID] = product
			}
			orders[i].OrderItems[j].Product = product
		}
	}
}
