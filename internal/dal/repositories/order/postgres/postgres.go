package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storefront-labs/order/internal/service/models/currency"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                 int64     `db:"id"`
	UserId             int64     `db:"user_id"`
	ShippingAddress1   string    `db:"shipping_address1"`
	ShippingAddress2   string    `db:"shipping_address2"`
	City               string    `db:"city"`
	Zip                string    `db:"zip"`
	Country            string    `db:"country"`
	Phone              string    `db:"phone"`
	Status             string    `db:"status"`
	TotalPriceCents    int64     `db:"total_price_cents"`
	TotalPriceCurrency string    `db:"total_price_currency"`
	DateOrdered        time.Time `db:"date_ordered"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalPriceCurrency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:                 o.Id,
		UserID:             o.UserId,
		ShippingAddress1:   o.ShippingAddress1,
		ShippingAddress2:   o.ShippingAddress2,
		City:               o.City,
		Zip:                o.Zip,
		Country:            o.Country,
		Phone:              o.Phone,
		Status:             status,
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: cur,
		DateOrdered:        o.DateOrdered,
		UpdatedAt:          o.UpdatedAt,
		OrderItems:         []orderitem.OrderItem{}, // Populated separately
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:                 o.ID,
		UserId:             o.UserID,
		ShippingAddress1:   o.ShippingAddress1,
		ShippingAddress2:   o.ShippingAddress2,
		City:               o.City,
		Zip:                o.Zip,
		Country:            o.Country,
		Phone:              o.Phone,
		Status:             o.Status.String(),
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: o.TotalPriceCurrency.String(),
		DateOrdered:        o.DateOrdered,
		UpdatedAt:          o.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository is the order store backed by Postgres.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"user_id",
	"shipping_address1",
	"shipping_address2",
	"city",
	"zip",
	"country",
	"phone",
	"status",
	"total_price_cents",
	"total_price_currency",
	"date_ordered",
	"updated_at",
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.ShippingAddress1,
		&dal.ShippingAddress2,
		&dal.City,
		&dal.Zip,
		&dal.Country,
		&dal.Phone,
		&dal.Status,
		&dal.TotalPriceCents,
		&dal.TotalPriceCurrency,
		&dal.DateOrdered,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return dal.ToModel()
}

// Insert persists a new order row and returns it with the assigned id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"user_id",
			"shipping_address1",
			"shipping_address2",
			"city",
			"zip",
			"country",
			"phone",
			"status",
			"total_price_cents",
			"total_price_currency",
			"date_ordered",
			"updated_at",
		).
		Values(
			dal.UserId,
			dal.ShippingAddress1,
			dal.ShippingAddress2,
			dal.City,
			dal.Zip,
			dal.Country,
			dal.Phone,
			dal.Status,
			dal.TotalPriceCents,
			dal.TotalPriceCurrency,
			dal.DateOrdered,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	inserted.OrderItems = o.OrderItems

	return inserted, nil
}

// Query retrieves orders matching the filter, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("date_ordered DESC", "id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus replaces the status of an order. Only status and updated_at
// change; items and total are untouched.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return updated, nil
}

// Delete removes an order row and returns the deleted order.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.
		Delete("orders").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	deleted, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	return deleted, nil
}

// TotalSalesCents sums total_price_cents across all orders. An empty table
// yields 0, not an error.
func (r *PostgresOrderRepository) TotalSalesCents(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.
		Select("COALESCE(SUM(total_price_cents), 0)").
		From("orders").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build total sales query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to query total sales: %w", err)
	}

	return total, nil
}

// Count returns the number of order rows.
func (r *PostgresOrderRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.
		Select("COUNT(*)").
		From("orders").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to query order count: %w", err)
	}

	return count, nil
}

func columnList() string {
	return strings.Join(orderColumns, ", ")
}
