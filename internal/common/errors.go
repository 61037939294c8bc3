// Sentinel errors shared across client and server layers. Callers should
// match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLoginRequired is returned by gated operations when no credential
	// is stored. It is the normal logged-out state, not a failure.
	ErrLoginRequired = errors.New("login required")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrTooManyAttempts is returned when the login rate limit is hit.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
