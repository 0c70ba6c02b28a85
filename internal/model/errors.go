package model

import "errors"

// Error taxonomy shared by store and handlers. Handlers translate these
// to HTTP status codes; anything unrecognized surfaces as a 500.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
