package caching

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the cache admin endpoints.
func RegisterRoutes(app *fiber.App, service *Service, adminKey func() string) {
	handler := NewHandler(service, adminKey)
	cache := app.Group("/cache")
	cache.Get("/stats", handler.GetStats)
	cache.Post("/clear", handler.Clear)
}
