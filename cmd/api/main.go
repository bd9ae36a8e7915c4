package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jhonvillanueva44/mammapizza-api/api/routes"
	adminsvc "github.com/jhonvillanueva44/mammapizza-api/internal/admin"
	"github.com/jhonvillanueva44/mammapizza-api/internal/adminauth"
	"github.com/jhonvillanueva44/mammapizza-api/internal/cart"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	checkoutsvc "github.com/jhonvillanueva44/mammapizza-api/internal/checkout"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/metrics"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogClient, err := catalog.NewClient(cfg.Backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog client", err)
		os.Exit(1)
	}

	cartService := cart.NewService(cart.NewRedisStore(redisClient, cfg.Cart.TTL), logg)
	checkoutService := checkoutsvc.NewService(cartService, cfg.WhatsApp.Number, logg)
	authService := adminauth.NewService(catalogClient, adminauth.NewRedisSessions(redisClient), cfg.Admin.SessionTTL, logg)
	adminService := adminsvc.NewService(catalogClient, logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			httpMetrics,
			metricsHandler,
			catalogClient,
			cartService,
			checkoutService,
			authService,
			adminService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
