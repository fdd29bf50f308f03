// Package common defines shared constants and sentinel errors used across
// client and server layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors.
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already in use")

	// Credential errors. Unknown email and wrong password share one value
	// so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Access guard errors.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")

	// Service-level errors.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInternal         = errors.New("internal error")
)

// IsForbidden reports whether err means a token was presented but rejected.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired)
}
