package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/koussaybh/patisserie-storefront/api/routes"
	"github.com/koussaybh/patisserie-storefront/internal/catalog"
	"github.com/koussaybh/patisserie-storefront/internal/orders"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/internal/session"
	"github.com/koussaybh/patisserie-storefront/pkg/bakery"
	"github.com/koussaybh/patisserie-storefront/pkg/config"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
	"github.com/koussaybh/patisserie-storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	backend, err := bakery.NewClient(cfg.Backend.BaseURL, bakery.WithTimeout(cfg.Backend.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to build bakery client", err)
		os.Exit(1)
	}

	engine := pricing.NewEngine(decimal.NewFromInt(int64(cfg.Pricing.DeliveryFee)))
	registry := session.NewRegistry(cfg.Session.TTL, cfg.Delivery.WindowDays)
	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	catalogService, err := catalog.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(backend, engine, orderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, backend, registry, engine, catalogService, orderService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
