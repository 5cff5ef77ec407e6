// Package hosting assembles the Fiber application: middleware, feature
// routes and server lifecycle.
package hosting

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"lyrica/src/features/caching"
	"lyrica/src/features/config"
	"lyrica/src/features/limiting"
	"lyrica/src/features/metrics"
	"lyrica/src/features/resolving"
	"lyrica/src/lyrics"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server. limiter may be nil when rate
// limiting is disabled in configuration.
func NewServer(cfg *config.Manager, resolvingHandler *resolving.Handler, cacheService *caching.Service, limiter *limiting.Limiter, rec *metrics.Recorder) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status": "error",
				"error":  fiber.Map{"message": "internal error"},
			})
		},
		AppName:               "Lyrica",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/", indexHandler)

	if limiter != nil {
		app.Use("/lyrics", limiting.Middleware(limiter, rec, func() bool {
			return cfg.Get().RateLimit.Enabled
		}))
	}

	resolving.RegisterRoutes(app, resolvingHandler)
	caching.RegisterRoutes(app, cacheService, func() string {
		return cfg.Get().AdminKey
	})
	config.RegisterRoutes(app, cfg)
	metrics.RegisterRoutes(app)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// indexHandler describes the API surface and the available providers.
func indexHandler(c *fiber.Ctx) error {
	providers := make([]fiber.Map, 0, len(lyrics.Providers))
	for _, id := range lyrics.Providers {
		cap := id.Capabilities()
		providers = append(providers, fiber.Map{
			"id":         cap.Index,
			"name":       string(id),
			"display":    cap.Display,
			"timestamps": cap.Timestamps,
			"speed":      string(cap.Speed),
		})
	}
	return c.JSON(fiber.Map{
		"name":      "Lyrica",
		"providers": providers,
		"endpoints": fiber.Map{
			"lyrics":      "/lyrics?artist=&song=&timestamps=&mood=&metadata=&fast=&sequence=",
			"metadata":    "/metadata?artist=&song=",
			"cache_stats": "/cache/stats",
			"cache_clear": "POST /cache/clear (X-Admin-Key)",
			"health":      "/health",
			"metrics":     "/metrics",
			"config":      "/config",
		},
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
