package lyrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Caller-visible failure taxonomy. Provider-level errors are never surfaced
// directly; they are absorbed into the attempt log and only plan exhaustion
// becomes ErrNotFound.
var (
	ErrMissingParameters = errors.New("artist and song name are required")
	ErrPlanningFailed    = errors.New("no eligible providers for requested options")
)

// NotFoundError signals that every planned provider returned no results or
// failed. It carries the full attempt trail for diagnosis.
type NotFoundError struct {
	Artist   string
	Song     string
	Attempts []AttemptRecord
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no lyrics found for '%s' by '%s'", e.Song, e.Artist)
}

// RateLimitedError signals quota exhaustion for one client identity.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %ds", int(e.RetryAfter.Seconds()))
}

// RetryAfterHeader renders the delay for the Retry-After response header,
// rounded up to whole seconds and never below one.
func (e *RateLimitedError) RetryAfterHeader() string {
	secs := int(math.Ceil(e.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
