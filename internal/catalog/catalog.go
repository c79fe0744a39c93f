package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// ErrProductUnavailable is returned when a product id cannot be resolved by
// the catalog.
var ErrProductUnavailable = errors.New("product unavailable in catalog")

// Product is the catalog summary for a single product.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Category   string `json:"category"`
}

// Service resolves a product id to its current catalog state. The catalog
// itself is an external system; this package only defines the contract and
// an HTTP client for it.
type Service interface {
	Product(ctx context.Context, productID int64) (*Product, error)
}

// HTTPClient is a Service implementation backed by the catalog HTTP API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a catalog client from viper configuration
// (catalog.base_url, catalog.request_timeout_ms).
func NewHTTPClient() *HTTPClient {
	timeout := viper.GetInt("catalog.request_timeout_ms")
	if timeout == 0 {
		timeout = 2000
	}

	return &HTTPClient{
		baseURL: viper.GetString("catalog.base_url"),
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Millisecond,
		},
	}
}

// Product fetches a single product summary.
func (c *HTTPClient) Product(ctx context.Context, productID int64) (*Product, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("product %d: %w", productID, ErrProductUnavailable)
	default:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return &product, nil
}
