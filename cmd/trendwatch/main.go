package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trendwatch/trendwatch/internal/config"
	"github.com/trendwatch/trendwatch/internal/ingest"
	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/persistence"
	"github.com/trendwatch/trendwatch/internal/router"
	"github.com/trendwatch/trendwatch/internal/services"
	"github.com/trendwatch/trendwatch/internal/summarize"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Trendwatch starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	snapshots, err := persistence.NewSnapshotStore(cfg.Persistence)
	if err != nil {
		logger.Fatal("Failed to initialize snapshot store", "error", err)
	}
	defer func() { _ = snapshots.Close() }()
	logger.Info("Snapshot store initialized", "backend", cfg.Persistence.Backend)

	summarizer := summarize.New(logger, cfg.Summarizer.URL, cfg.Summarizer.Timeout)
	if summarizer.Enabled() {
		logger.Info("Summarizer configured", "url", cfg.Summarizer.URL)
	} else {
		logger.Warn("Summarizer disabled - no endpoint configured")
	}

	svc := services.NewAnalyticsService(logger, cfg.Analytics, snapshots, summarizer)

	// Restore previous state if a snapshot exists
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := svc.LoadSnapshot(ctx)
		cancel()

		var svcErr *services.ServiceError
		if err == nil {
			logger.Info("Previous snapshot restored")
		} else if errors.As(err, &svcErr) && svcErr.Code == "NO_SNAPSHOT" {
			logger.Info("No previous snapshot, starting empty")
		} else {
			logger.Warn("Failed to restore snapshot, starting empty", "error", err)
		}
	}

	fetcher := ingest.NewFetcher(logger, cfg.DataSource.URL, cfg.DataSource.Timeout)

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	app := router.New(logger, svc, fetcher, *cfg)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	// Persist state on the way out
	if err := svc.SaveSnapshot(shutdownCtx); err != nil {
		logger.Error("Failed to save snapshot on shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
