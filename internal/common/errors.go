// Package common defines shared constants and sentinel errors used across
// client and server layers of Rosebud. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// Local store lifecycle errors.
	ErrStoreUnavailable = errors.New("local store unavailable")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrPartialSync  = errors.New("partial sync")

	// Validation errors.
	ErrValidation         = errors.New("validation error")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEntryExistsForDate = errors.New("entry already exists for date")
	ErrInvalidLoginOrPass = errors.New("invalid username/password")
	ErrJoinCodeNotFound   = errors.New("join code not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
