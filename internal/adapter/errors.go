package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from backend HTTP statuses by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// Client-side failures.
var (
	// ErrTransport wraps failures that happen before a response is received
	// (DNS, refused connections, timeouts).
	ErrTransport = errors.New("transport failure")

	// ErrSessionExpired is returned when a 401 could not be recovered by a
	// token refresh. The token store has been cleared at this point.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoRefreshToken is returned by Refresh when no refresh token is
	// stored.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx backend response.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the "message" field of the JSON error body, if any.
	Message string
	// Body is the raw response body, kept for logging.
	Body string
	// Err is the sentinel matching StatusCode.
	Err error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %v: %s", e.StatusCode, e.Err, e.Message)
	}
	return fmt.Sprintf("http %d: %v", e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// MessageOf returns the backend-provided message carried by err.
func MessageOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// IsRetryable reports whether repeating the same request may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrBadGateway)
}
