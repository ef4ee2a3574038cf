package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound indicates that a referenced entity does not exist
	// or fails its role-scoped lookup.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidState indicates an operation attempted against an entity in a
	// terminal state, or an unmet structural precondition.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict indicates a uniqueness violation, such as a duplicate email
	// or a duplicate buyer+product pair.
	ErrConflict = errors.New("conflict")

	// ErrUpstreamIO indicates a blob-store or record-store call failed
	// independent of business validity.
	ErrUpstreamIO = errors.New("upstream io failure")

	// ErrCompensationIncomplete indicates a workflow failed AND at least one
	// reverse compensation also failed, leaving orphaned resources that
	// require operator attention.
	ErrCompensationIncomplete = errors.New("compensation incomplete")

	// ErrValueIsRequired indicates a required value is missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value fails validation.
	ErrValueIsInvalid = errors.New("value is invalid")
)

// sanitize removes line breaks from values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " "), "\r", " ")
}

// ObjectNotFoundError reports that an entity could not be found by the given
// parameter. Unwraps to ErrObjectNotFound.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause, typically a datastore error.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateError reports an operation attempted against an entity whose
// current state forbids it. Unwraps to ErrInvalidState.
type InvalidStateError struct {
	Entity  string
	Message string
}

// NewInvalidStateError creates an InvalidStateError for the given entity.
func NewInvalidStateError(entity, message string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Message: message}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidState, e.Entity, sanitize(e.Message))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError reports a uniqueness violation detected by the record store's
// duplicate-key signal. Unwraps to ErrConflict.
type ConflictError struct {
	Entity string
	Cause  error
}

// NewConflictError creates a ConflictError wrapping the duplicate-key cause.
func NewConflictError(entity string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, e.Entity, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Entity)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UpstreamIOError reports a failed call to the blob store or the record store.
// Unwraps to ErrUpstreamIO.
type UpstreamIOError struct {
	Operation string
	Cause     error
}

// NewUpstreamIOError creates an UpstreamIOError for a failed upstream call.
func NewUpstreamIOError(operation string, cause error) *UpstreamIOError {
	return &UpstreamIOError{Operation: operation, Cause: cause}
}

func (e *UpstreamIOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamIO, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamIO, e.Operation)
}

func (e *UpstreamIOError) Unwrap() error {
	return ErrUpstreamIO
}

// ValueIsRequiredError reports a missing required value.
// Unwraps to ErrValueIsRequired.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that fails validation.
// Unwraps to ErrValueIsInvalid.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}
