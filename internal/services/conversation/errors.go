package conversation

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	ErrTypeStoreWrite      ErrorType = "STORE_WRITE_FAILED"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrNotFound           = errors.New("chatroom not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNoChatroomSelected = errors.New("no chatroom selected")
	ErrStoreWriteFailed   = errors.New("store write failed")
)

// Error is the core's typed error. All conversation errors are local: they
// surface to the caller once and are never retried or propagated further.
type Error struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversation %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("conversation %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newNotFoundError(operation, id string) *Error {
	return &Error{
		Type:      ErrTypeNotFound,
		Operation: operation,
		Message:   fmt.Sprintf("chatroom %q does not exist", id),
		Cause:     ErrNotFound,
	}
}

func newInvalidArgumentError(operation, msg string) *Error {
	return &Error{
		Type:      ErrTypeInvalidArgument,
		Operation: operation,
		Message:   msg,
		Cause:     ErrInvalidArgument,
	}
}

func newStoreError(operation, msg string, cause error) *Error {
	return &Error{
		Type:      ErrTypeStoreWrite,
		Operation: operation,
		Message:   msg,
		Cause:     fmt.Errorf("%w: %w", ErrStoreWriteFailed, cause),
	}
}
