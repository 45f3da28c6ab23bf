package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trendwatch/trendwatch/internal/models"
)

// Summarize sends the current statistics to the external text-generation
// service and returns the narrative it produced
func (h *Handler) Summarize(c *fiber.Ctx) error {
	result, err := h.svc.Summarize(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(models.SummarizeResponse{Summary: result.Summary})
}
