package core

import "errors"

// Errors returned by the Board adapter; the REST layer maps each to one status code.
var (
	ErrBadArguments  = errors.New("invalid request")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("board service unavailable")
	ErrUnauthorized  = errors.New("missing acting user")
)
