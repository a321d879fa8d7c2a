// Package common defines shared constants and sentinel errors used across
// the forum data layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrOwnerMissing = errors.New("owner does not exist")
	ErrEmptyTitle   = errors.New("topic title must not be empty")

	// Service-level errors (generic/internal flow control).
	ErrInternal  = errors.New("internal error")
	ErrForbidden = errors.New("forbidden")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
