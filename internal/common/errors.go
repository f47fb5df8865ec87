// Package common contains shared constants and sentinel errors used across
// the Asset Tracker client. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// ErrNotFound — the requested record does not exist on the server.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized — the server rejected the access token. The request
	// pipeline recovers from this once per attempt via the refresh flow.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired — the refresh credential is missing or was rejected.
	// Credentials have been cleared; the user must sign in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrValidation — the server rejected the request as a business-rule
	// violation (e.g. checking out an asset that is not available).
	ErrValidation = errors.New("validation error")

	// ErrForbidden — the authenticated user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable — transport failure, timeout, or server error.
	ErrUnavailable = errors.New("server unavailable")
)
