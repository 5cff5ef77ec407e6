package resolving

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the lyrics and metadata endpoints.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/lyrics", handler.GetLyrics)
	app.Get("/metadata", handler.GetMetadata)
}
