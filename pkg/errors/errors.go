package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateKey = errors.New("duplicate key")

// Kind classifies an AppError for transport mapping.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

type AppError struct {
	Kind      Kind
	Code      string
	Message   string
	Err       error
	Details   []Detail
	Retryable bool
}

// Detail is a structured reason attached to an AppError.
type Detail struct {
	Field  string `json:"field,omitempty"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details ...Detail) *AppError {
	e.Details = append(e.Details, details...)
	return e
}

func NewValidationError(code, message string, err error) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message, Err: err}
}

func NewNotFoundError(code, message string, err error) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message, Err: err}
}

// NewConflictError marks a uniqueness violation. The caller may regenerate the
// conflicting identifier and try again.
func NewConflictError(code, message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message, Err: err, Retryable: true}
}

func NewInternalError(code, message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: code, Message: message, Err: err}
}

// IsKind reports whether err wraps an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// DuplicateKeyError is returned by stores when a unique constraint rejects a write.
type DuplicateKeyError struct {
	Constraint string
	Err        error
}

func (e *DuplicateKeyError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("duplicate key violates unique constraint %q", e.Constraint)
	}
	return "duplicate key violates unique constraint"
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// IsDuplicateKey reports whether err is a DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}

// RecordFailure describes one record a batch could not update.
type RecordFailure struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Reason     string `json:"reason"`
}

// PartialFailure reports a batch that kept going past failed records.
type PartialFailure struct {
	Attempted int
	Succeeded int
	Failures  []RecordFailure
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("partial failure: %d of %d records updated, %d failed",
		e.Succeeded, e.Attempted, len(e.Failures))
}

// SagaError reports a multi-step operation that stopped after some steps were committed.
type SagaError struct {
	Operation string
	Step      string
	Completed []string
	EntityID  string
	Err       error
}

func (e *SagaError) Error() string {
	return fmt.Sprintf("%s stopped at step %s (completed: %s): %v",
		e.Operation, e.Step, strings.Join(e.Completed, ","), e.Err)
}

func (e *SagaError) Unwrap() error {
	return e.Err
}
