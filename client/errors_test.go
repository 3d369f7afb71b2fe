package client

import (
	"errors"
	"testing"
)

func TestHTTPError_IsNotFound(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{404, true},
		{410, true},
		{400, false},
		{500, false},
	}

	for _, tt := range tests {
		err := &HTTPError{StatusCode: tt.status, URL: "https://example.test/pkg"}
		if got := err.IsNotFound(); got != tt.want {
			t.Errorf("HTTPError{%d}.IsNotFound() = %v, want %v", tt.status, got, tt.want)
		}
		if got := errors.Is(err, ErrNotFound); got != tt.want {
			t.Errorf("errors.Is(HTTPError{%d}, ErrNotFound) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestNotFoundError_Unwrap(t *testing.T) {
	err := &NotFoundError{Ecosystem: "pypi", Name: "no-such-package"}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should unwrap to ErrNotFound")
	}
	want := "pypi: package no-such-package not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRateLimitError_Message(t *testing.T) {
	withHint := &RateLimitError{URL: "https://example.test", RetryAfter: 30}
	if got := withHint.Error(); got != "rate limited, retry after 30 seconds: https://example.test" {
		t.Errorf("Error() = %q", got)
	}
	without := &RateLimitError{URL: "https://example.test"}
	if got := without.Error(); got != "rate limited: https://example.test" {
		t.Errorf("Error() = %q", got)
	}
}
