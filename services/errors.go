// services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Sentinel errors controllers map onto HTTP status codes. Services wrap them
// with fmt.Errorf("%w: ...") so errors.Is keeps working while the message
// stays useful in logs.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotVerified        = errors.New("account not verified")
)

// NoAvailabilityError reports the first proposed booking day not covered by
// any availability window. It is a Conflict for status-code purposes.
type NoAvailabilityError struct {
	Day string
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("No availability for %s", e.Day)
}

func (e *NoAvailabilityError) Unwrap() error { return ErrConflict }
