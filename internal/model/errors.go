package model

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when a create or update would violate
	// email uniqueness.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials is the uniform authentication failure.
	// Unknown email and wrong password both map here so callers cannot
	// tell the cases apart.
	ErrInvalidCredentials = errors.New("unable to login")

	// ErrInvalidToken covers missing, malformed, expired, forged and
	// revoked tokens alike.
	ErrInvalidToken = errors.New("invalid authorization token")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
