package authgate

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrUnauthenticated is returned when a request carries no usable credentials.
var ErrUnauthenticated = errors.New("request is not authenticated")

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID int64
	Admin  bool
}

// Gate authenticates an incoming request. Authentication itself is an
// external concern; the order core only consumes the resulting Caller.
type Gate interface {
	Authenticate(r *http.Request) (Caller, error)
}

// Config carries the gate configuration explicitly. There is no process-wide
// secret; whoever wires the gate constructs it with the values it needs.
type Config struct {
	Secret      string
	AdminHeader string
}

type ctxKey struct{}

// WithCaller stores the caller in the context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CallerFrom extracts the caller from the context, if one was stored.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok
}

// Middleware authenticates every request through the gate and stores the
// caller in the request context. Requests the gate rejects get 401.
func Middleware(gate Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := gate.Authenticate(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// BearerGate is a Gate that trusts a shared bearer secret and reads the
// caller identity from request headers. Suitable for wiring behind an
// API gateway that has already verified the token.
type BearerGate struct {
	cfg Config
}

func NewBearerGate(cfg Config) *BearerGate {
	return &BearerGate{cfg: cfg}
}

func (g *BearerGate) Authenticate(r *http.Request) (Caller, error) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token != g.cfg.Secret {
		return Caller{}, ErrUnauthenticated
	}

	caller := Caller{Admin: r.Header.Get(g.cfg.AdminHeader) == "true"}
	if id, err := strconv.ParseInt(r.Header.Get("X-User-Id"), 10, 64); err == nil {
		caller.UserID = id
	}

	return caller, nil
}
