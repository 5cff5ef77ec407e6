package caching

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the cache admin endpoints.
type Handler struct {
	service  *Service
	adminKey func() string
}

// NewHandler creates a cache handler. adminKey is read per request so
// config reloads take effect immediately.
func NewHandler(service *Service, adminKey func() string) *Handler {
	return &Handler{service: service, adminKey: adminKey}
}

// GetStats returns the hit/miss counters and live entry count.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   h.service.Stats(c.Context()),
	})
}

// Clear drops every cached resolution. Requires the admin key in the
// X-Admin-Key header.
func (h *Handler) Clear(c *fiber.Ctx) error {
	key := h.adminKey()
	given := c.Get("X-Admin-Key")
	if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error": fiber.Map{
				"message":   "invalid or missing admin key",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}

	removed, err := h.service.Clear(c.Context())
	if err != nil {
		slog.Error("Cache clear failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error": fiber.Map{
				"message":   "failed to clear cache",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
	slog.Info("Cache cleared", "removed", removed)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"removed": removed},
	})
}
