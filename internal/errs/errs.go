// Package errs contains sentinel errors shared by the repository, service and HTTP layers.
package errs

import "errors"

var (
	// ErrNotFound indicates the record does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, invalid or expired credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates a failed email/password check at token issuance.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyExists indicates a unique constraint violation (e.g. email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation is matched by every payload validation failure.
	ErrValidation = errors.New("validation failed")
)
