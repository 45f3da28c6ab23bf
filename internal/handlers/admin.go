package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trendwatch/trendwatch/internal/models"
)

// ClearData discards the entire series store
func (h *Handler) ClearData(c *fiber.Ctx) error {
	h.svc.Clear()
	return c.JSON(models.StatusResponse{Status: "cleared"})
}

// SaveSnapshot persists the current store state
func (h *Handler) SaveSnapshot(c *fiber.Ctx) error {
	if err := h.svc.SaveSnapshot(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(models.StatusResponse{Status: "saved"})
}

// RestoreSnapshot replaces the store with the persisted snapshot
func (h *Handler) RestoreSnapshot(c *fiber.Ctx) error {
	if err := h.svc.LoadSnapshot(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(models.StatusResponse{Status: "restored"})
}
