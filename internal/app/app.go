package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefront-labs/order/internal/catalog"
	"github.com/storefront-labs/order/internal/dal/postgres"
	"github.com/storefront-labs/order/internal/dal/rabbitmq"
	"github.com/storefront-labs/order/internal/dal/repositories/audit"
	outboxrepo "github.com/storefront-labs/order/internal/dal/repositories/outbox/postgres"
	"github.com/storefront-labs/order/internal/otelctl"
	"github.com/storefront-labs/order/internal/service/pricer"
	"github.com/storefront-labs/order/internal/service/services/ordersvc"
	"github.com/storefront-labs/order/internal/service/services/reportsvc"
	httptransport "github.com/storefront-labs/order/internal/transport/http"
	"github.com/storefront-labs/order/internal/userdir"
	outboxworker "github.com/storefront-labs/order/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	reportSvc      *reportsvc.ReportService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otelctl.Controller
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otelctl.MustInit()
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	catalogClient := catalog.NewHTTPClient()
	userdirClient := userdir.NewHTTPClient()

	outboxRepo := outboxrepo.NewOutboxRepository(postgresClient)
	auditRepo := audit.NewAuditRabbitMQRepository(rabbitClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithPriceResolver(pricer.NewResolver(catalogClient)),
		ordersvc.WithCatalog(catalogClient),
		ordersvc.WithUserDirectory(userdirClient),
		ordersvc.WithAuditRepository(auditRepo),
		ordersvc.WithOutboxRepository(outboxRepo),
	)

	reportSvc := reportsvc.MustNewReportService(
		reportsvc.WithPostgresClient(postgresClient),
		reportsvc.WithHistorySource(orderSvc),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, reportSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		reportSvc:      reportSvc,
		transport:      transport,
		outboxWorker:   outboxworker.NewWorker(outboxRepo, rabbitClient),
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Application shutdown complete")
}
