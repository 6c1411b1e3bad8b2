// Package common defines shared constants and sentinel errors used across
// client and server layers of FluxPad. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorValidation         = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenKind = errors.New("wrong token kind")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
