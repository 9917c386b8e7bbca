package bin

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by Bin operations. All typed errors below unwrap
// to one of these, so callers can match with errors.Is without caring which
// operation failed.
var (
	// ErrFrozen indicates a new resource was offered to a frozen Bin.
	// Disposal of existing entries remains permitted while frozen.
	ErrFrozen = errors.New("bin is frozen")

	// ErrUninitialized indicates an operation on a Bin whose storage was
	// never established or has been destroyed.
	ErrUninitialized = errors.New("bin storage not initialized")

	// ErrNotAPromise indicates AddPromise received a value that does not
	// expose the promise capability set.
	ErrNotAPromise = errors.New("value is not a promise")
)

// FrozenError reports a mutating registration rejected because the Bin is
// frozen. No mutation occurs when this error is returned.
type FrozenError struct {
	// Op is the operation that was rejected, e.g. "set" or "add".
	Op string
}

// NewFrozenError creates a FrozenError for the given operation.
func NewFrozenError(op string) *FrozenError {
	return &FrozenError{Op: op}
}

// Error returns the formatted error message.
func (e *FrozenError) Error() string {
	return fmt.Sprintf("bin %s: %v", e.Op, ErrFrozen)
}

// Unwrap returns the underlying sentinel.
func (e *FrozenError) Unwrap() error {
	return ErrFrozen
}

// Is checks if this error matches the target.
func (e *FrozenError) Is(target error) bool {
	if _, ok := target.(*FrozenError); ok {
		return true
	}
	return target == ErrFrozen
}

// UninitializedError reports an operation invoked on a Bin with no storage.
// This is a defensive guard against misuse of the construction path; it also
// signals operations attempted after Destroy.
type UninitializedError struct {
	// Op is the operation that was rejected.
	Op string
}

// NewUninitializedError creates an UninitializedError for the given operation.
func NewUninitializedError(op string) *UninitializedError {
	return &UninitializedError{Op: op}
}

// Error returns the formatted error message.
func (e *UninitializedError) Error() string {
	return fmt.Sprintf("bin %s: %v", e.Op, ErrUninitialized)
}

// Unwrap returns the underlying sentinel.
func (e *UninitializedError) Unwrap() error {
	return ErrUninitialized
}

// Is checks if this error matches the target.
func (e *UninitializedError) Is(target error) bool {
	if _, ok := target.(*UninitializedError); ok {
		return true
	}
	return target == ErrUninitialized
}

// NotAPromiseError reports a value passed to AddPromise that lacks the
// promise capability set (status inspection, completion registration, and
// cancellation).
type NotAPromiseError struct {
	// Value is the offending value, kept for diagnostics.
	Value any
}

// NewNotAPromiseError creates a NotAPromiseError for the given value.
func NewNotAPromiseError(v any) *NotAPromiseError {
	return &NotAPromiseError{Value: v}
}

// Error returns the formatted error message.
func (e *NotAPromiseError) Error() string {
	return fmt.Sprintf("bin add promise: %T: %v", e.Value, ErrNotAPromise)
}

// Unwrap returns the underlying sentinel.
func (e *NotAPromiseError) Unwrap() error {
	return ErrNotAPromise
}

// Is checks if this error matches the target.
func (e *NotAPromiseError) Is(target error) bool {
	if _, ok := target.(*NotAPromiseError); ok {
		return true
	}
	return target == ErrNotAPromise
}
