package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sjsage522/wishlistwatcher/config"
	"sjsage522/wishlistwatcher/helpers"
	"sjsage522/wishlistwatcher/internal/crawler"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Strs("wishlists", cfg.WishlistURLs).
		Dur("poll_interval", cfg.PollInterval).
		Str("state_backend", cfg.StateBackend).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	services, err := initializeServices(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	crawlers := crawler.CreateCrawlers(cfg, services.Cache, services.Client)
	log.Info().Int("crawler_count", len(crawlers)).Msg("Created crawlers")

	w := worker.NewWorker(
		ctx,
		crawlers,
		services.Store,
		services.Notifier,
		helpers.NewLogger("worker"),
		worker.Settings{
			PollInterval:       cfg.PollInterval,
			FetchesPerMinute:   cfg.FetchRatePerMin,
			NotifyTitleUpdates: cfg.NotifyTitleUpdates,
		},
	)

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting wishlist watcher")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}
