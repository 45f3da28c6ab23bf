package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trendwatch/trendwatch/internal/config"
	"github.com/trendwatch/trendwatch/internal/models"
)

// GetOptions returns the active analysis thresholds
func (h *Handler) GetOptions(c *fiber.Ctx) error {
	opts := h.svc.Options()
	return c.JSON(models.AnalysisOptions{
		AnalysisWindowMonths:     opts.AnalysisWindowMonths,
		MovingAverageWindow:      opts.MovingAverageWindow,
		SeasonalPeakThresholdPct: opts.SeasonalPeakThresholdPct,
		VolatilityCVThresholdPct: opts.VolatilityCVThresholdPct,
	})
}

// UpdateOptions replaces the analysis thresholds. The next projection is
// recomputed over all keywords with the new values.
func (h *Handler) UpdateOptions(c *fiber.Ctx) error {
	var req models.AnalysisOptions
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "Failed to parse request body: " + err.Error(),
			},
		})
	}

	opts := config.AnalyticsConfig{
		AnalysisWindowMonths:     req.AnalysisWindowMonths,
		MovingAverageWindow:      req.MovingAverageWindow,
		SeasonalPeakThresholdPct: req.SeasonalPeakThresholdPct,
		VolatilityCVThresholdPct: req.VolatilityCVThresholdPct,
	}

	if err := h.svc.UpdateOptions(opts); err != nil {
		return err
	}

	return c.JSON(req)
}
