package traits

import (
	"errors"
	"fmt"
)

// Representation operation errors.
var (
	ErrMissingTrait   = errors.New("trait not found on representation")
	ErrDuplicateTrait = errors.New("trait already exists on representation")
)

// Registry and decode errors.
var (
	ErrTraitNotFound       = errors.New("no trait registered for id")
	ErrIncompatibleVersion = errors.New("incompatible trait version")
	ErrMalformedData       = errors.New("trait data must be a mapping")
	ErrMalformedSpec       = errors.New("invalid frame number in the list")
)

// ValidationError reports a failed cross-trait invariant. Scope is the trait
// name that detected the failure (or the representation name when failures
// are aggregated by Representation.Validate).
type ValidationError struct {
	Scope   string
	Message string
}

// Error returns the scope-prefixed message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Scope, e.Message)
}

// validationErrorf builds a ValidationError with a formatted message.
func validationErrorf(scope, format string, args ...any) *ValidationError {
	return &ValidationError{Scope: scope, Message: fmt.Sprintf(format, args...)}
}
