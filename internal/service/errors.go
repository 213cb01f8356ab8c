package service

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a signed-in
	// operator.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnknownUserID is returned when the profile id cannot be resolved.
	ErrUnknownUserID = errors.New("unknown user id")

	ErrInvalidDataProvided = errors.New("invalid data provided")
)

// UserError is an error carrying the text shown to the operator.
type UserError struct {
	// Message is the backend message when one was sent, else the
	// per-operation fallback.
	Message string
	// Retryable is set for transport failures.
	Retryable bool
	Err       error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}
