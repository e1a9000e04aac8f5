package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/redis"
	"github.com/mrops-br/storefront-api/internal/infrastructure/storefront"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run wires the service and blocks until shutdown. Returning instead of exiting
// lets the deferred cleanups flush telemetry and close clients.
func run(args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	telem, err := telemetry.NewTelemetry(&cfg.OTLP, cfg.Level())
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.Tracer()
	meter := telem.Meter()
	logger := telem.Logger

	logger.Info("Starting Storefront API")

	// services report ErrStorefrontNotConfigured on a nil interface, so a missing
	// client must stay an untyped nil
	var upstream domain.Storefront
	if cfg.Storefront.Configured() {
		client, err := storefront.NewClient(&cfg.Storefront, tracer, meter, logger)
		if err != nil {
			logger.Error("Failed to create storefront client", slog.String("error", err.Error()))
			return fmt.Errorf("failed to create storefront client: %w", err)
		}
		defer func() { _ = client.Close() }()
		upstream = client
	} else {
		logger.Warn("Storefront credentials missing, page loads will fail",
			slog.String("missing", "SHOPIFY_STORE_DOMAIN or SHOPIFY_STOREFRONT_API_TOKEN"),
		)
	}

	var (
		carts  domain.CartRepository
		health http.HealthCheck
	)
	switch cfg.Cart.Store {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()

		repo := redis.NewCartRepository(client, cfg.Cart.TTL, tracer, logger)
		carts, health = repo, repo.Ping
		logger.Info("Using Redis cart store", slog.String("addr", cfg.Redis.Addr))
	default:
		carts = memory.NewCartRepository(tracer, logger)
		logger.Info("Using in-memory cart store")
	}

	settings := service.Settings{
		PageSize: cfg.Storefront.PageSize,
		StoreURL: cfg.Storefront.PublicStoreURL,
	}

	pages := handler.NewPageHandler(
		service.NewHomeService(upstream, tracer, meter, logger),
		service.NewCollectionService(upstream, settings, tracer, meter, logger),
		service.NewProductService(upstream, settings, tracer, meter, logger),
		logger,
	)
	cartHandler := handler.NewCartHandler(service.NewCartService(carts, upstream, tracer, meter, logger), logger)

	server := http.NewServer(&cfg.Server, pages, cartHandler, health, logger, telem)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case serveErr = <-serverErr:
		if serveErr != nil {
			logger.Error("Server error", slog.String("error", serveErr.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
	return serveErr
}
