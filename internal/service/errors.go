package service

import "errors"

// Errors returned by the service. Handlers map them to HTTP status codes;
// they are usually wrapped with a message safe to show to the caller.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)
