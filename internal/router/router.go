package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trendwatch/trendwatch/internal/config"
	"github.com/trendwatch/trendwatch/internal/handlers"
	"github.com/trendwatch/trendwatch/internal/ingest"
	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/middleware"
	"github.com/trendwatch/trendwatch/internal/services"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, svc *services.AnalyticsService,
	fetcher *ingest.Fetcher, cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, svc, fetcher)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Report Ingestion Routes
	v1.Post("/reports/csv", h.IngestCSV)
	v1.Post("/reports/fetch", h.FetchReports)

	// Trend Query Routes
	v1.Get("/trends", h.GetTrends)
	v1.Get("/trends/:keyword", h.GetTrend)
	v1.Get("/peaks", h.GetPeaks)
	v1.Get("/window", h.GetWindow)

	// Analysis Options Routes
	v1.Get("/config/analysis", h.GetOptions)
	v1.Put("/config/analysis", h.UpdateOptions)

	// Summarization Route
	v1.Post("/summarize", h.Summarize)

	// Data Management Routes
	v1.Delete("/data", h.ClearData)
	v1.Post("/snapshot", h.SaveSnapshot)
	v1.Post("/snapshot/restore", h.RestoreSnapshot)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, svc *services.AnalyticsService,
	fetcher *ingest.Fetcher, cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Trendwatch",
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, svc, fetcher, cfg)

	return app
}
