package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors used for simple equality-style checks. Typed errors below
// unwrap to these so callers can match with errors.Is while still getting
// structured diagnostics via errors.As.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTitle indicates a tag title that cannot produce an
	// identifier (empty or whitespace-only). Best-effort call sites such as
	// EnsureTag swallow this and report "no tag" instead of failing.
	ErrInvalidTitle = errors.New("invalid title")
)

// NotFoundError carries the entity type and identifier that failed to
// resolve. It unwraps to ErrNotFound.
type NotFoundError struct {
	Type Type
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s: not found", e.Type, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError constructs a typed NotFoundError.
func NewNotFoundError(t Type, id string) error {
	return &NotFoundError{Type: t, ID: id}
}

// ConflictError reports a duplicate create or an in-use deletion. The
// message is user-visible (e.g. "Action already exists").
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	if e.Msg == "" {
		return "conflict"
	}
	return e.Msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError constructs a typed ConflictError with a human message.
func NewConflictError(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports rejected input: a missing title, an empty update
// field set, or a disallowed file extension.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError constructs a typed ValidationError with a human message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Convenience predicates

// IsNotFound reports whether err is (or wraps) a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is (or wraps) a conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err is (or wraps) rejected input.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
