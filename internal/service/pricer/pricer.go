package pricer

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/service/models/order"
	"golang.org/x/sync/errgroup"
)

// LinePrice is the resolved unit price for one cart line, in cart order.
type LinePrice struct {
	ProductID  int64
	Quantity   int
	PriceCents int64
}

// Resolver resolves cart line prices against the catalog. A single
// ResolveAll call fans out one catalog lookup per line; prices are not
// cached beyond the call.
type Resolver struct {
	catalog     catalog.Service
	timeout     time.Duration
	concurrency int
}

// option configures the Resolver.
type option func(*Resolver)

// NewResolver creates a price resolver over the given catalog.
func NewResolver(svc catalog.Service, opts ...option) *Resolver {
	timeoutMs := viper.GetInt("catalog.resolve_timeout_ms")
	if timeoutMs == 0 {
		timeoutMs = 5000
	}

	r := &Resolver{
		catalog:     svc,
		timeout:     time.Duration(timeoutMs) * time.Millisecond,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithTimeout bounds the whole resolution batch.
func WithTimeout(d time.Duration) option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithConcurrency limits the number of in-flight catalog lookups.
func WithConcurrency(n int) option {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

// ResolveAll resolves the unit price of every cart line concurrently,
// preserving cart order in the result. The first failure cancels the
// remaining lookups and is returned as-is, so callers can distinguish
// catalog.ErrProductUnavailable from transport failures.
func (r *Resolver) ResolveAll(ctx context.Context, lines []order.CartLine) ([]LinePrice, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	prices := make([]LinePrice, len(lines))
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			product, err := r.catalog.Product(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("resolve price of product %d: %w", line.ProductID, err)
			}

			prices[i] = LinePrice{
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				PriceCents: product.PriceCents,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return prices, nil
}

// TotalCents sums the line subtotals.
func TotalCents(prices []LinePrice) int64 {
	var total int64
	for _, p := range prices {
		total += int64(p.Quantity) * p.PriceCents
	}
	return total
}
