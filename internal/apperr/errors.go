// Package apperr defines the request-scoped errors rendered to API clients.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a client-facing failure carrying an HTTP status and a message.
type Error struct {
	Status  int
	Message string
	// Fields holds per-field reasons for validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// BadRequest builds a 400 error (not found, duplicates, invalid input).
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized builds a 401 error (missing or invalid token, wrong role, bad credentials).
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// TooManyRequests builds a 429 error.
func TooManyRequests(msg string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: msg}
}

// Validation builds a 400 error describing field-level schema violations.
func Validation(fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
