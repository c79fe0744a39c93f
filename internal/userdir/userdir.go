package userdir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// ErrUserNotFound is returned when the directory has no record for an id.
var ErrUserNotFound = errors.New("user not found in directory")

// User is the directory summary attached to expanded orders.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Directory resolves a user id to its profile summary. The directory is an
// external system; this package defines the contract and an HTTP client.
type Directory interface {
	User(ctx context.Context, userID int64) (*User, error)
}

// HTTPClient is a Directory implementation backed by the user directory API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a directory client from viper configuration
// (userdir.base_url, userdir.request_timeout_ms).
func NewHTTPClient() *HTTPClient {
	timeout := viper.GetInt("userdir.request_timeout_ms")
	if timeout == 0 {
		timeout = 2000
	}

	return &HTTPClient{
		baseURL: viper.GetString("userdir.base_url"),
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Millisecond,
		},
	}
}

// User fetches a single user summary.
func (c *HTTPClient) User(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	default:
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	return &user, nil
}
