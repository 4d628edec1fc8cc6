// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCredential signals that an insert or update collides with
	// an existing username or email, compared case-insensitively.
	ErrDuplicateCredential = errors.New("duplicate credential")

	// Auth errors. ErrInvalidToken covers both an unknown secret and an
	// expired one so that callers cannot tell the two cases apart.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthenticationRequired signals a password change attempted without
	// Basic authentication on the same request.
	ErrAuthenticationRequired = errors.New("authentication required")

	// Service-level errors.
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnsupportedLocale = errors.New("unsupported locale")
)
