package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrActivationLimit is a generic sentinel for the active-goal ceiling.
	ErrActivationLimit = errors.New("activation limit reached")
	// ErrStorage is a generic sentinel for adapter failures.
	ErrStorage = errors.New("storage failure")
)

// FieldError is a single blocking field-level violation.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldWarning is a non-blocking field-level advisory.
type FieldWarning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every violated field, not just the first.
type ValidationError struct {
	Kind   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// NotFoundError reports an operation target that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "not found"
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ActivationLimitError is a business-rule rejection, distinct from
// validation: the submitted data is otherwise valid.
type ActivationLimitError struct {
	Limit  int
	Active int
}

func (e *ActivationLimitError) Error() string {
	if e == nil {
		return "activation limit reached"
	}
	return fmt.Sprintf(
		"activation limit reached: %d of %d goals already active; pause or complete an existing goal first",
		e.Active,
		e.Limit,
	)
}

func (e *ActivationLimitError) Unwrap() error { return ErrActivationLimit }

// StorageError wraps an opaque adapter failure. It is propagated
// unchanged; retries belong to the adapter's transport.
type StorageError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StorageError) Error() string {
	if e == nil {
		return "storage failure"
	}
	return fmt.Sprintf("storage %s failed (key=%q): %v", e.Op, e.Key, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool      { return errors.Is(err, ErrInvalidArgument) }
func IsActivationLimit(err error) bool { return errors.Is(err, ErrActivationLimit) }

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
