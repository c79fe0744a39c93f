package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/storefront-labs/order/internal/authgate"
	"github.com/storefront-labs/order/internal/service/models/order"
	createorder "github.com/storefront-labs/order/internal/transport/http/create_order"
	deleteorder "github.com/storefront-labs/order/internal/transport/http/delete_order"
	getorder "github.com/storefront-labs/order/internal/transport/http/get_order"
	listorders "github.com/storefront-labs/order/internal/transport/http/list_orders"
	"github.com/storefront-labs/order/internal/transport/http/reports"
	updatestatus "github.com/storefront-labs/order/internal/transport/http/update_status"
	userhistory "github.com/storefront-labs/order/internal/transport/http/user_history"
	"github.com/storefront-labs/order/pkg/http/middleware/trace"
	"github.com/storefront-labs/order/pkg/logger"
)

type orderService interface {
	CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error)
	GetOrders(
		ctx context.Context,
		filter *order.QueryOrdersModel,
		expand order.QueryExpansion,
	) ([]order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error)
	DeleteOrder(ctx context.Context, id int64) (*order.Order, error)
}

type reportService interface {
	TotalSales(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	UserHistory(ctx context.Context, userID int64) ([]order.Order, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	orderSvc  orderService
	reportSvc reportService
}

func NewHTTPTransport(orderSvc orderService, reportSvc reportService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		orderSvc:  orderSvc,
		reportSvc: reportSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/reports/total-sales", h.totalSales)
			r.Get("/reports/count", h.count)
			r.Get("/users/{userId}", h.userHistory)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}", h.updateStatus)
			r.Delete("/{id}", h.deleteOrder)
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) totalSales(w http.ResponseWriter, r *http.Request) {
	reports.TotalSales(w, r, h.reportSvc)
}

func (h *HTTPTransport) count(w http.ResponseWriter, r *http.Request) {
	reports.Count(w, r, h.reportSvc)
}

func (h *HTTPTransport) userHistory(w http.ResponseWriter, r *http.Request) {
	userhistory.UserHistory(w, r, h.reportSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	// The gate is optional so local runs without a gateway in front stay easy.
	if secret := viper.GetString("server.http.auth.secret"); secret != "" {
		gate := authgate.NewBearerGate(authgate.Config{
			Secret:      secret,
			AdminHeader: viper.GetString("server.http.auth.admin_header"),
		})
		router.Use(authgate.Middleware(gate))
	}

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
