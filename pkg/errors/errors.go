// Package errors provides the error taxonomy shared by the stores, the
// authentication layer and the HTTP endpoints.
//
// Typed errors implement Is so callers can match on the sentinels with the
// standard errors.Is:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // 404
//	}
package errors

import (
	"errors"
	"fmt"
)

// New is the standard library errors.New.
var New = errors.New

// Is and As are re-exported so callers importing this package need no
// second errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Sentinel errors
var (
	// ErrNotFound indicates that a requested document does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness conflict
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that request input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated caller acting on another account
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates the document store could not serve the request
	ErrUnavailable = errors.New("store unavailable")
)

// NotFoundError is returned when no document matches an id
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a request that failed field validation.
// Message is returned to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewMissingFieldError reports a required field absent from a create request
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Missing `%s` in request body", field),
	}
}

// ConflictError represents a uniqueness violation, e.g. a taken username
type ConflictError struct {
	Resource string
	Field    string
	Message  string
	Err      error
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s already exists", e.Resource, e.Field)
}

// Unwrap implements errors.Unwrap
func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewConflictError creates a new ConflictError
func NewConflictError(resource, field, message string, err error) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Message: message, Err: err}
}

// StoreError wraps a failure from the underlying database
type StoreError struct {
	Operation  string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Collection, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreError) Is(target error) bool {
	return target == ErrUnavailable
}

// WrapStore wraps err as a StoreError. A nil err stays nil.
func WrapStore(operation, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Operation: operation, Collection: collection, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is a conflict error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnavailable checks if an error came from the document store
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
