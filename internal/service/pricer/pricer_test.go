package pricer_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/service/models/order"
	"github.com/storefront-labs/order/internal/service/pricer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	mu       sync.Mutex
	products map[int64]catalog.Product
	delay    time.Duration
	calls    int
}

func (c *stubCatalog) Product(ctx context.Context, productID int64) (*catalog.Product, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p, ok := c.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", productID, catalog.ErrProductUnavailable)
	}
	return &p, nil
}

func TestResolveAll_PreservesCartOrder(t *testing.T) {
	stub := &stubCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, PriceCents: 100},
		2: {ID: 2, PriceCents: 200},
		3: {ID: 3, PriceCents: 300},
	}}
	r := pricer.NewResolver(stub, pricer.WithTimeout(time.Second), pricer.WithConcurrency(3))

	lines := []order.CartLine{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}

	prices, err := r.ResolveAll(context.Background(), lines)
	require.NoError(t, err)

	require.Len(t, prices, 3)
	assert.Equal(t, int64(3), prices[0].ProductID)
	assert.Equal(t, int64(300), prices[0].PriceCents)
	assert.Equal(t, int64(1), prices[1].ProductID)
	assert.Equal(t, int64(2), prices[2].ProductID)
}

func TestResolveAll_MissingProductFailsBatch(t *testing.T) {
	stub := &stubCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, PriceCents: 100},
	}}
	r := pricer.NewResolver(stub, pricer.WithTimeout(time.Second))

	lines := []order.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	}

	_, err := r.ResolveAll(context.Background(), lines)
	require.ErrorIs(t, err, catalog.ErrProductUnavailable)
}

func TestResolveAll_TimeoutBoundsTheBatch(t *testing.T) {
	stub := &stubCatalog{
		products: map[int64]catalog.Product{1: {ID: 1, PriceCents: 100}},
		delay:    500 * time.Millisecond,
	}
	r := pricer.NewResolver(stub, pricer.WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := r.ResolveAll(context.Background(), []order.CartLine{{ProductID: 1, Quantity: 1}})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestResolveAll_CallerCancellationPropagates(t *testing.T) {
	stub := &stubCatalog{
		products: map[int64]catalog.Product{1: {ID: 1, PriceCents: 100}},
		delay:    500 * time.Millisecond,
	}
	r := pricer.NewResolver(stub, pricer.WithTimeout(5*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.ResolveAll(ctx, []order.CartLine{{ProductID: 1, Quantity: 1}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolveAll_LooksUpEveryLine(t *testing.T) {
	stub := &stubCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, PriceCents: 100},
		2: {ID: 2, PriceCents: 200},
	}}
	r := pricer.NewResolver(stub, pricer.WithTimeout(time.Second), pricer.WithConcurrency(2))

	lines := []order.CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 4},
	}

	prices, err := r.ResolveAll(context.Background(), lines)
	require.NoError(t, err)
	assert.Len(t, prices, 3)
	assert.Equal(t, 3, stub.calls)
}

func TestTotalCents(t *testing.T) {
	prices := []pricer.LinePrice{
		{ProductID: 1, Quantity: 2, PriceCents: 1000},
		{ProductID: 2, Quantity: 3, PriceCents: 500},
	}
	assert.Equal(t, int64(3500), pricer.TotalCents(prices))

	assert.Equal(t, int64(0), pricer.TotalCents(nil))
}
