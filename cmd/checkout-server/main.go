package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/nikolayk812/checkout-demo/internal/checkout"
	"github.com/nikolayk812/checkout-demo/internal/config"
	"github.com/nikolayk812/checkout-demo/internal/demo"
	"github.com/nikolayk812/checkout-demo/internal/httpapi"
	"github.com/nikolayk812/checkout-demo/internal/logging"
	"github.com/nikolayk812/checkout-demo/internal/metrics"
	"github.com/nikolayk812/checkout-demo/internal/report"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("checkout-server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	// Seed data
	scenario, err := demo.NewScenario(cfg.Currency)
	if err != nil {
		return fmt.Errorf("demo.NewScenario: %w", err)
	}

	catalog, err := repository.NewCatalog(scenario.Items()...)
	if err != nil {
		return fmt.Errorf("repository.NewCatalog: %w", err)
	}

	customers, err := repository.NewCustomer(scenario.Customer)
	if err != nil {
		return fmt.Errorf("repository.NewCustomer: %w", err)
	}
	logger.Info("seeded customer", zap.Stringer("id", scenario.Customer.ID), zap.String("name", scenario.Customer.Name))

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m, err := metrics.NewCheckoutMetrics(reg)
	if err != nil {
		return fmt.Errorf("metrics.NewCheckoutMetrics: %w", err)
	}

	svc := checkout.NewService(
		checkout.WithShippingFee(cfg.ShippingFee),
		checkout.WithSink(report.NewLogSink(logger)),
		checkout.WithMetrics(m),
		checkout.WithLogger(logger),
	)

	// HTTP server
	r := mux.NewRouter()
	httpapi.NewHandler(catalog, customers, svc, reg, logger).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	logger.Info("checkout-server shutdown complete")

	return nil
}
