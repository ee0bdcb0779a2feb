package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. The HTTP layer maps each to a
// fixed status code.
var (
	// ErrForbidden is returned when a principal may not act on a resource.
	ErrForbidden = errors.New("access forbidden")

	// ErrInvalidCredentials covers both a wrong password and a missing
	// user, so login failures cannot be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("already exists")

	// ErrInUse is returned when deleting an entity that recipes still
	// reference.
	ErrInUse = errors.New("entity is referenced by recipes")

	// ErrValidation is the base of all input validation failures.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError identifies the entity and id of a failed lookup.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for entity and id.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Invalid builds a validation error with a formatted message. The result
// matches ErrValidation under errors.Is.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
