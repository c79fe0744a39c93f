package authgate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-labs/order/internal/authgate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestBearerGate_Authenticate(t *testing.T) {
	gate := authgate.NewBearerGate(authgate.Config{
		Secret:      "s3cret",
		AdminHeader: "X-Admin",
	})

	t.Run("valid token", func(t *testing.T) {
		req := newBearerRequest("s3cret")
		req.Header.Set("X-User-Id", "42")
		req.Header.Set("X-Admin", "true")

		caller, err := gate.Authenticate(req)
		require.NoError(t, err)

		assert.Equal(t, int64(42), caller.UserID)
		assert.True(t, caller.Admin)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := gate.Authenticate(newBearerRequest("nope"))
		assert.ErrorIs(t, err, authgate.ErrUnauthenticated)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := gate.Authenticate(newBearerRequest(""))
		assert.ErrorIs(t, err, authgate.ErrUnauthenticated)
	})
}

func TestMiddleware_RejectsWith401(t *testing.T) {
	gate := authgate.NewBearerGate(authgate.Config{Secret: "s3cret", AdminHeader: "X-Admin"})

	var gotCaller authgate.Caller
	handler := authgate.Middleware(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCaller, _ = authgate.CallerFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newBearerRequest("bad"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := newBearerRequest("s3cret")
	req.Header.Set("X-User-Id", "7")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotCaller.UserID)
}
