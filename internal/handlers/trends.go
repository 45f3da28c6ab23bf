package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trendwatch/trendwatch/internal/models"
	"github.com/trendwatch/trendwatch/internal/trends"
)

// GetTrends returns the sorted derived trend records. An optional ?month=
// query parameter (name or 1-12) restricts the set to keywords whose
// primary peak months include it.
func (h *Handler) GetTrends(c *fiber.Ctx) error {
	proj := h.svc.Projection()

	resp := models.TrendsResponse{
		Records: proj.Records,
		Window:  proj.Window,
	}

	if raw := c.Query("month"); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: err.Error(),
				},
			})
		}
		resp.Records = trends.FilterByPeakMonth(proj.Records, month)
		resp.Month = month.String()
	}

	resp.Count = len(resp.Records)
	return c.JSON(resp)
}

// GetTrend returns the derived record for a single keyword
func (h *Handler) GetTrend(c *fiber.Ctx) error {
	keyword := c.Params("keyword")

	proj := h.svc.Projection()
	for _, r := range proj.Records {
		if r.Keyword == keyword {
			return c.JSON(models.TrendResponse{Record: r, Window: proj.Window})
		}
	}

	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "KEYWORD_NOT_FOUND",
			Message: fmt.Sprintf("no data for keyword %q", keyword),
		},
	})
}

// GetPeaks returns the per-month tally of keywords peaking that month
func (h *Handler) GetPeaks(c *fiber.Ctx) error {
	proj := h.svc.Projection()

	tally := make(map[string]int, len(proj.MonthTally))
	for month, count := range proj.MonthTally {
		tally[month.String()] = count
	}

	return c.JSON(models.PeaksResponse{MonthTally: tally})
}

// GetWindow returns the active analysis window; has_window is false when
// the store is empty
func (h *Handler) GetWindow(c *fiber.Ctx) error {
	proj := h.svc.Projection()
	return c.JSON(models.WindowResponse{
		Window:    proj.Window,
		HasWindow: proj.Window != nil,
	})
}

// parseMonth accepts a calendar month as a name ("January", "jan") or a
// number 1-12
func parseMonth(raw string) (time.Month, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), nil
		}
		return 0, fmt.Errorf("month must be between 1 and 12, got %d", n)
	}

	name := strings.ToLower(raw)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unrecognized month %q", raw)
}
