// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Domain error types for consistent error handling across the application.
// These errors represent business rule violations and domain constraints.

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidID is returned when an identifier does not have the store-native syntax.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrConflict is returned when there's a conflict with the current state,
	// such as a duplicate email.
	ErrConflict = errors.New("conflict")

	// ErrUpdateFailed is returned when the store reports that an update did not apply.
	ErrUpdateFailed = errors.New("update failed")
)

// ErrorKind classifies errors for the transport boundary.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// KindOf classifies err. Anything not recognised is internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case IsValidationError(err):
		return KindValidation
	case IsNotFound(err):
		return KindNotFound
	case IsConflict(err):
		return KindConflict
	default:
		return KindInternal
	}
}

// DomainError wraps a base error with additional context.
// It provides a standard way to add details to domain errors.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Base
}

// Kind returns the classification of the error.
func (e *DomainError) Kind() ErrorKind {
	return KindOf(e.Base)
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: resource,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewInvalidIDError creates an error for a malformed identifier.
func NewInvalidIDError(id string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidID,
		Message: fmt.Sprintf("%q is not a %d character hex string", id, IDLength),
		Field:   FieldID,
	}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Base:    ErrConflict,
		Message: message,
	}
}

// NewUpdateFailedError creates an error for an update the store did not apply.
func NewUpdateFailedError(id string) *DomainError {
	return &DomainError{
		Base:    ErrUpdateFailed,
		Message: id,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
// Malformed identifiers count as validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidID)
}

// IsInvalidID checks if an error is a malformed identifier error.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUpdateFailed checks if an error reports an update that did not apply.
func IsUpdateFailed(err error) bool {
	return errors.Is(err, ErrUpdateFailed)
}
