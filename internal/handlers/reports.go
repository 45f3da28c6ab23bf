package handlers

import (
	"bytes"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trendwatch/trendwatch/internal/ingest"
	"github.com/trendwatch/trendwatch/internal/models"
	"github.com/trendwatch/trendwatch/internal/series"
)

// IngestCSV handles a CSV report upload. The body is either the raw CSV or
// a multipart form with a "file" part; an optional report_date query
// parameter (YYYY-MM-DD) overrides the default of today.
func (h *Handler) IngestCSV(c *fiber.Ctx) error {
	reportDate := series.NormalizeDate(time.Now())
	if raw := c.Query("report_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "report_date must be YYYY-MM-DD",
				},
			})
		}
		reportDate = series.NormalizeDate(parsed)
	}

	body, err := h.csvBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "Failed to read CSV body: " + err.Error(),
			},
		})
	}

	incoming, stats, err := ingest.ParseCSV(bytes.NewReader(body), reportDate, h.logger)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CSV",
				Message: err.Error(),
			},
		})
	}

	totalKeywords, totalPoints := h.svc.Ingest(incoming)

	return c.JSON(models.IngestResponse{
		Keywords:      stats.Keywords,
		Points:        stats.Points,
		SkippedRows:   stats.SkippedRows,
		SkippedValues: stats.SkippedValues,
		TotalKeywords: totalKeywords,
		TotalPoints:   totalPoints,
	})
}

// csvBody extracts the CSV content from a multipart upload or the raw body
func (h *Handler) csvBody(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return io.ReadAll(f)
	}
	return c.Body(), nil
}

// FetchReports pulls one report from the configured data source and merges
// it. A fetch failure leaves previously merged state intact.
func (h *Handler) FetchReports(c *fiber.Ctx) error {
	incoming, stats, err := h.fetcher.Fetch(c.UserContext())
	if err != nil {
		h.logger.Warn("Report fetch failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FETCH_FAILED",
				Message: err.Error(),
			},
		})
	}

	totalKeywords, totalPoints := h.svc.Ingest(incoming)

	return c.JSON(models.IngestResponse{
		Keywords:      stats.Keywords,
		Points:        stats.Points,
		SkippedRows:   stats.SkippedRows,
		SkippedValues: stats.SkippedValues,
		TotalKeywords: totalKeywords,
		TotalPoints:   totalPoints,
	})
}
