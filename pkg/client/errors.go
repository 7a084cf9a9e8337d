package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrUserNotFound is returned when the profile lookup answers 404.
var ErrUserNotFound = errors.New("user not found")

// APIError represents a non-2xx response (or an unreadable 2xx body) from GitHub.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// NetworkError means no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == code
	}
	return false
}

// Describe turns a fetch error into the short message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	var netErr *NetworkError
	switch {
	case errors.Is(err, ErrUserNotFound):
		return ErrUserNotFound.Error()
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return "GitHub rejected the token (401); update it with gitone token set"
		case http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Sprintf("GitHub refused the request (%d): %s", apiErr.Status, apiErr.Message)
		}
		return fmt.Sprintf("GitHub API error (%d): %s", apiErr.Status, apiErr.Message)
	case errors.As(err, &netErr):
		return "could not reach GitHub, check your connection"
	}
	return err.Error()
}
