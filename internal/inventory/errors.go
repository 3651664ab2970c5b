package inventory

import "errors"

// ErrNotFound is returned when no item matches the given id.
var ErrNotFound = errors.New("inventory item not found")

// ErrInsufficientStock is returned when a decrement would drive stock below
// zero. The mutation is refused, never clamped.
var ErrInsufficientStock = errors.New("insufficient stock")

// ValidationError communicates a rejected field back to the caller.
type ValidationError struct {
	message string
}

func (e ValidationError) Error() string { return e.message }

func newValidationError(msg string) error {
	return ValidationError{message: msg}
}

// IsValidation helps callers distinguish rejected input from infrastructure
// failures.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
