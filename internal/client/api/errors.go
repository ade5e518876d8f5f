package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when the server rejects the bearer token.
// By the time a caller sees it the persisted session has already been
// cleared; the shell reacts by dropping back to the login prompt.
var ErrSessionExpired = errors.New("session expired")

// NetworkError wraps a transport failure where no response was obtained.
// It is surfaced to the caller and never retried automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-success response from the server, carrying the
// server-provided detail message or a synthesized one.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the human-readable error, suitable for display.
	Message string
}

func (e *APIError) Error() string { return e.Message }

// DecodeError is a malformed body on an otherwise successful response.
// It is fatal for that call.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
