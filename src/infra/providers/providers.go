// Package providers contains the adapters for the external lyrics sources.
// Each adapter performs a single outbound attempt per Fetch call and maps
// "song not known" to a (nil, nil) return.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "Lyrica/1.0"

// NewHTTPClient returns the client shared by the adapters. Timeouts are
// enforced per call through the request context, not here.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// getJSON performs a GET and decodes the JSON body into out. A non-200
// status is an error; callers decide whether that means no-results.
func getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError carries a non-200 upstream status.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.code)
}

// isStatus reports whether err is a statusError with the given code.
func isStatus(err error, code int) bool {
	se, ok := err.(*statusError)
	return ok && se.code == code
}
