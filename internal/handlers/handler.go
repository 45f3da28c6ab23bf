// Package handlers contains the HTTP handlers for the trend analytics API.
package handlers

import (
	"github.com/trendwatch/trendwatch/internal/ingest"
	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger  *logging.Logger
	svc     *services.AnalyticsService
	fetcher *ingest.Fetcher
}

// New creates a new handler instance
func New(logger *logging.Logger, svc *services.AnalyticsService, fetcher *ingest.Fetcher) *Handler {
	return &Handler{
		logger:  logger,
		svc:     svc,
		fetcher: fetcher,
	}
}
