package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmailTaken   = errors.New("email already registered")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("invalid request")
)
