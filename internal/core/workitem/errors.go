package workitem

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when input is missing a required field, an
	// update carries no fields, or a value cannot be parsed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an item does not exist in the caller's scope.
	ErrNotFound = errors.New("work item not found")
	// ErrInvalidIdentifier is returned for ids without a recognized kind prefix.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrStorage wraps failures of the underlying store.
	ErrStorage = errors.New("storage error")
	// ErrBusy marks a storage error caused by another writer holding the
	// database lock past the busy timeout. The call can be retried.
	ErrBusy = errors.New("store busy")
)

// ValidationError carries the underlying field errors while matching
// ErrValidation with errors.Is.
type ValidationError struct {
	Err error
}

// Invalid wraps err as a ValidationError. A nil err yields nil.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Err.Error() }

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Err} }

// StorageError wraps a store failure so that it matches ErrStorage while the
// driver error stays reachable through errors.As.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
