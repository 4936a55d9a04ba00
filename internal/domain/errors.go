package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPastEvent          = errors.New("event already ended")
	ErrRegistrationClosed = errors.New("registration closed")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrEventAtCapacity    = errors.New("event and waitlist at capacity")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateSlug      = errors.New("slug already in use")
)

// Error codes carried in the API error envelope.
const (
	CodeBadRequest   = "bad_request"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
)

// Error is a domain failure that already knows how it is presented to a client.
// Message is safe to show to end users as-is.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns a 404 error wrapping ErrNotFound.
func NewNotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// NewBadRequestError returns a 400 error wrapping the given sentinel.
func NewBadRequestError(sentinel error, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message, Err: sentinel}
}

// NewUnauthorizedError returns a 401 error wrapping ErrUnauthorized.
func NewUnauthorizedError(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message, Err: ErrUnauthorized}
}
