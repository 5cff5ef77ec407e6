package resolving

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lyrica/src/features/enriching"
	"lyrica/src/lyrics"
)

// Handler handles lyrics and metadata requests.
type Handler struct {
	service         *Service
	metadata        enriching.MetadataLookup
	metadataTimeout time.Duration
}

// NewHandler creates a new resolving handler. metadata may be nil when the
// metadata feature is disabled.
func NewHandler(service *Service, metadata enriching.MetadataLookup, metadataTimeout time.Duration) *Handler {
	return &Handler{service: service, metadata: metadata, metadataTimeout: metadataTimeout}
}

// GetLyrics resolves lyrics for ?artist=&song= with the optional
// timestamps, mood, metadata, fast and sequence flags.
func (h *Handler) GetLyrics(c *fiber.Ctx) error {
	req := lyrics.LyricsRequest{
		Artist:         strings.TrimSpace(c.Query("artist")),
		Song:           strings.TrimSpace(c.Query("song")),
		WantTimestamps: c.QueryBool("timestamps", false),
		WantMood:       c.QueryBool("mood", false),
		WantMetadata:   c.QueryBool("metadata", false),
		FastMode:       c.QueryBool("fast", false),
	}
	if sequence := c.Query("sequence"); sequence != "" {
		req.CustomSequence = strings.Split(sequence, ",")
	}

	result, attempts, err := h.service.Resolve(c.Context(), req)
	if err != nil {
		return respondError(c, err, attempts)
	}
	return c.JSON(fiber.Map{
		"status":   "success",
		"data":     result,
		"attempts": attempts,
	})
}

// GetMetadata looks up song metadata without resolving lyrics.
func (h *Handler) GetMetadata(c *fiber.Ctx) error {
	artist := strings.TrimSpace(c.Query("artist"))
	song := strings.TrimSpace(c.Query("song"))
	if artist == "" || song == "" {
		return respondError(c, lyrics.ErrMissingParameters, nil)
	}
	if h.metadata == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "metadata lookup is disabled")
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.metadataTimeout)
	defer cancel()
	meta, err := h.metadata.Lookup(ctx, artist, song)
	if err != nil {
		slog.Warn("Metadata lookup failed", "artist", artist, "song", song, "error", err)
		return errorJSON(c, fiber.StatusNotFound, "no metadata found for this song")
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   meta,
	})
}

// respondError maps engine errors to HTTP status codes with the shared
// error envelope.
func respondError(c *fiber.Ctx, err error, attempts []lyrics.AttemptRecord) error {
	var notFound *lyrics.NotFoundError
	var limited *lyrics.RateLimitedError
	switch {
	case errors.Is(err, lyrics.ErrMissingParameters):
		return errorJSON(c, fiber.StatusBadRequest, "artist and song parameters are required")
	case errors.Is(err, lyrics.ErrPlanningFailed):
		return errorJSON(c, fiber.StatusBadRequest, "no usable provider sequence for this request")
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status": "error",
			"error": fiber.Map{
				"message":   err.Error(),
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
			"attempts": attempts,
		})
	case errors.As(err, &limited):
		c.Set(fiber.HeaderRetryAfter, limited.RetryAfterHeader())
		return errorJSON(c, fiber.StatusTooManyRequests, err.Error())
	default:
		slog.Error("Resolution failed", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "internal error")
	}
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error": fiber.Map{
			"message":   message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
