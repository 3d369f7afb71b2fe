package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a package or resource is not found.
var ErrNotFound = errors.New("not found")

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 or 410 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}

// Unwrap maps 404/410 responses onto ErrNotFound so callers can use errors.Is.
func (e *HTTPError) Unwrap() error {
	if e.IsNotFound() {
		return ErrNotFound
	}
	return nil
}

// NotFoundError wraps ErrNotFound with the package that was looked up.
type NotFoundError struct {
	Ecosystem string
	Name      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: package %s not found", e.Ecosystem, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// RateLimitError is returned when the registry is still rate limiting
// after all retries have been spent.
type RateLimitError struct {
	URL        string
	RetryAfter int // seconds; 0 if the registry did not say
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %d seconds: %s", e.RetryAfter, e.URL)
	}
	return fmt.Sprintf("rate limited: %s", e.URL)
}
