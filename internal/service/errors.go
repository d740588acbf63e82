package service

import "errors"

// Error kinds surfaced to the HTTP layer. Handlers map these to status codes
// with errors.Is; anything else becomes a generic 500 without leaking
// internals.
var (
	// ErrValidation indicates a missing or empty required field.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a duplicate username or email.
	ErrConflict = errors.New("already exists")
	// ErrNotFound indicates a referenced user or resource is absent.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized covers bad credentials and invalid, expired or
	// mismatched tokens.
	ErrUnauthorized = errors.New("unauthorized")
)
