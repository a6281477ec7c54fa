package domain

import "errors"

// error classes shared across packages, typed errors wrap one of them
var (
	// ErrValidation marks malformed input to rendering or generation
	ErrValidation = errors.New("validation error")
	// ErrExternalService marks a failing or unreachable collaborator
	ErrExternalService = errors.New("external service error")
	// ErrMalformedResponse marks generation output failing format checks
	ErrMalformedResponse = errors.New("malformed response")
)
