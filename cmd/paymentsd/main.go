package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cartwise/payments/internal/application/strategy"
	"github.com/cartwise/payments/internal/application/usecase"
	"github.com/cartwise/payments/internal/domain/service"
	"github.com/cartwise/payments/internal/infrastructure/adapters"
	"github.com/cartwise/payments/internal/infrastructure/config"
	"github.com/cartwise/payments/internal/infrastructure/messaging"
	infraPG "github.com/cartwise/payments/internal/infrastructure/postgres"
	"github.com/cartwise/payments/internal/presentation/rest"
	"github.com/cartwise/payments/pkg/kafka"
	"github.com/cartwise/payments/pkg/observability"
	pgpkg "github.com/cartwise/payments/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting payments service",
		"http_port", cfg.HTTPPort,
		"webhook_topic", cfg.WebhookTopic,
	)

	_, metricsHandler, err := observability.InitMetrics(cfg.Metrics)
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	pool, err := pgpkg.NewPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pgpkg.RunMigrations(cfg.Postgres.DSN(), cfg.MigrationsDir); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	producer := kafka.NewProducer(cfg.Kafka)
	defer producer.Close()

	// Repositories and outbound adapters.
	txRepo := infraPG.NewTransactionRepository(pool)
	eventRepo := infraPG.NewPaymentEventRepository(pool)
	publisher := messaging.NewEventPublisher(producer)
	siteConfig := adapters.NewStaticSiteConfig(nil, adapters.SiteRecord{
		AutoCapture:              true,
		ReviewTransactionsAtRisk: true,
	})
	apmStore := adapters.NewStaticAPMStore()
	gatewayClient := adapters.NewStubGatewayClient(logger)

	// Application wiring.
	deps := strategy.Deps{
		Resolver: service.NewTypeResolver(),
		Site:     siteConfig,
		Gateway:  gatewayClient,
		APMs:     apmStore,
		Logger:   logger,
		BuildTag: cfg.BuildTag,
	}
	factory := usecase.NewRequestFactory(deps, strategy.NewDefaultRegistry(deps))
	responses := strategy.NewDefaultResponseRegistry(logger)
	authorizeUC := usecase.NewAuthorizePaymentUseCase(factory, responses, deps, cfg.GatewayTimeout, logger)
	reconciler := usecase.NewTransactionReconciler(siteConfig, txRepo, eventRepo, publisher, cfg.EventsTopic, logger)

	consumer := messaging.NewWebhookConsumer(cfg.Kafka, cfg.WebhookTopic, reconciler, txRepo, logger)
	defer consumer.Close()

	// HTTP server: payment operations, health checks and metrics.
	mux := http.NewServeMux()
	rest.NewPaymentHandler(authorizeUC, factory, gatewayClient, logger).RegisterRoutes(mux)
	mux.Handle("/metrics", metricsHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pgpkg.HealthCheck(r.Context(), pool); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: mux,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("webhook consumer starting", "topic", cfg.WebhookTopic)
		errCh <- consumer.Start(ctx)
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("payments service stopped")
}
