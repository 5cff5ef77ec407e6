package config

import (
	"github.com/gofiber/fiber/v2"
)

// Handler handles config requests.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new config handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// GetConfig returns the running configuration with secrets redacted.
// ?format=yaml switches the encoding.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	if c.Query("format") == "yaml" {
		c.Set(fiber.HeaderContentType, "application/x-yaml")
		return c.SendString(h.manager.GetYAML())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(h.manager.GetJSON())
}
