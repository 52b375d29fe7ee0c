package usecase

import "errors"

// Failure taxonomy surfaced to callers. Every outcome is terminal and
// user-actionable; only ErrUnavailable is worth retrying on the
// client side.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrExpired      = errors.New("expired")
	ErrValidation   = errors.New("validation failed")
	ErrUnavailable  = errors.New("storage unavailable")
)
