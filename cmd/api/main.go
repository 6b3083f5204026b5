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

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/config"
	"restaurant-pos/internal/database"
	"restaurant-pos/internal/events"
	"restaurant-pos/internal/handler"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/router"
	"restaurant-pos/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting restaurant POS API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	txOpts := database.TxOptions(cfg.Database.TxIsolation)

	// Initialize repositories
	dishRepo := repository.NewDishRepository(pool, txOpts, logger)
	orderRepo := repository.NewOrderRepository(pool, txOpts, logger)
	snapshotRepo := repository.NewSnapshotRepository(pool, logger)
	guestRepo := repository.NewGuestRepository(pool, logger)
	tableRepo := repository.NewTableRepository(pool, logger)
	socketRepo := repository.NewSocketRepository(pool, logger)

	if len(cfg.Catalog.SeedFiles) > 0 {
		importer := catalog.NewImporter(catalogLoader(ctx, cfg, logger), dishRepo, logger)
		if _, err := importer.Import(ctx, cfg.Catalog.SeedFiles); err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}
	}

	publisher, err := eventPublisher(ctx, cfg.RabbitMQ, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}
	defer publisher.Close()

	// Initialize services
	settings := service.SettingsFromConfig(cfg.App)
	notifier := service.NewNotifier(socketRepo, publisher, settings, logger)
	snapshotService := service.NewSnapshotService(snapshotRepo, settings, logger)
	dishService := service.NewDishService(dishRepo, logger)
	orderService := service.NewOrderService(orderRepo, dishRepo, guestRepo, tableRepo, snapshotService, notifier, settings, logger)
	paymentService := service.NewPaymentService(orderRepo, notifier, settings, logger)
	indicatorService := service.NewIndicatorService(orderRepo, guestRepo, dishRepo, settings, logger)

	mux := router.New(router.Handlers{
		Orders:     handler.NewOrderHandler(orderService, paymentService, logger),
		Dishes:     handler.NewDishHandler(dishService, logger),
		Indicators: handler.NewIndicatorHandler(indicatorService, logger),
	}, router.Options{
		APIKey:         cfg.Auth.APIKey,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("timezone", settings.Location.String()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// catalogLoader reads seed files from S3 when enabled, falling back to the
// local file system.
func catalogLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) catalog.Loader {
	fileLoader := catalog.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for catalog seed files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}

// eventPublisher connects to RabbitMQ when enabled and otherwise discards
// lifecycle events.
func eventPublisher(ctx context.Context, cfg config.RabbitMQConfig, logger zerolog.Logger) (events.Publisher, error) {
	if !cfg.Enabled {
		logger.Info().Msg("order event publishing disabled")
		return events.NopPublisher{}, nil
	}
	return events.Dial(ctx, cfg, logger)
}
