package ads

import (
	"errors"
	"fmt"
)

// Common errors returned by the ADS client.
var (
	// ErrNotFound indicates no record matched the requested bibcode.
	ErrNotFound = errors.New("not found in ADS")

	// ErrAuthError indicates an authentication error (missing/invalid API key).
	ErrAuthError = errors.New("ADS authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("ADS rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ADS")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from ADS")
)

// APIError represents an error status from the ADS API.
type APIError struct {
	StatusCode int
	Message    string
	Bibcode    string // For context in record lookups
}

func (e *APIError) Error() string {
	if e.Bibcode != "" {
		return fmt.Sprintf("ADS API error (status %d): %s (bibcode: %s)", e.StatusCode, e.Message, e.Bibcode)
	}
	return fmt.Sprintf("ADS API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates a record was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsTransient returns true for failures worth retrying: rate limiting,
// server-side errors and network faults.
func IsTransient(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNetworkError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
