package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/servicenest/checkout-engine/api/routes"
	checkoutsvc "github.com/servicenest/checkout-engine/internal/checkout"
	"github.com/servicenest/checkout-engine/internal/drafts"
	"github.com/servicenest/checkout-engine/internal/fieldstate"
	"github.com/servicenest/checkout-engine/internal/pricing"
	"github.com/servicenest/checkout-engine/pkg/config"
	"github.com/servicenest/checkout-engine/pkg/db"
	"github.com/servicenest/checkout-engine/pkg/instance"
	"github.com/servicenest/checkout-engine/pkg/logger"
	"github.com/servicenest/checkout-engine/pkg/metrics"
	"github.com/servicenest/checkout-engine/pkg/migrate"
	"github.com/servicenest/checkout-engine/pkg/redis"
)

const (
	serviceName     = "checkout-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		_ = dbClient.Close()
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	if cfg.Checkout.OverridesCommissionRate() {
		logg.Warn(logg.WithField(ctx, "commission_rate", cfg.Checkout.CommissionRate.String()),
			"commission rate overrides the standard platform fee of "+config.DefaultCommissionRate)
	}
	calculator := pricing.NewCalculator(cfg.Checkout.CommissionRate)
	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Drafts:     drafts.NewRepository(dbClient.DB()),
		Calculator: &calculator,
		Metrics:    checkoutMetrics,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	sessionStore, err := fieldstate.NewStore(redisClient, cfg.Checkout.PaymentSessionTTL)
	if err != nil {
		logg.Error(ctx, "failed to create payment session store", err)
		os.Exit(1)
	}
	sessionService, err := fieldstate.NewService(fieldstate.ServiceParams{
		Store:   sessionStore,
		Metrics: checkoutMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create payment session service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"addr":            addr,
		"instance":        instance.GetID(),
		"commission_rate": calculator.Rate().String(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Idempotency:     redisClient,
			Checkout:        checkoutService,
			PaymentSessions: sessionService,
			CheckoutMetrics: checkoutMetrics,
			HTTPMetrics:     httpMetrics,
			Gatherer:        registry,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
	}
}
