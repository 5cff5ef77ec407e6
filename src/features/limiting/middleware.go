package limiting

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lyrica/src/features/metrics"
	"lyrica/src/lyrics"
)

// Middleware enforces the per-client quota before a request reaches the
// resolution flow. Identity is the client IP. enabled is read per request
// so config reloads take effect without a restart.
func Middleware(limiter *Limiter, rec *metrics.Recorder, enabled func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled() {
			return c.Next()
		}
		decision := limiter.Allow(c.Context(), c.IP())
		if decision.Allowed {
			return c.Next()
		}

		rec.RateLimited()
		limited := &lyrics.RateLimitedError{RetryAfter: decision.RetryAfter}
		c.Set(fiber.HeaderRetryAfter, limited.RetryAfterHeader())
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"status": "error",
			"error": fiber.Map{
				"message":   limited.Error(),
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
}
