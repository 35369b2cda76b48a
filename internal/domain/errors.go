package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidCode and ErrChallengeExpired are kept apart for logging only;
	// callers must present both with the same message.
	ErrInvalidCode      = errors.New("invalid code")
	ErrChallengeExpired = errors.New("challenge expired")
)
