// Package errors provides structured error types for the pagesmith engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the editor, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The taxonomy mirrors how the editor reacts to a failure:
//   - UNKNOWN_COMPONENT_TYPE: registry lookup miss, isolated to one render call
//   - NOT_FOUND: mutation on a missing id, resolved as a logged no-op
//   - VALIDATION_FAILED: blocked local action, surfaced as inline feedback
//   - PERSISTENCE_FAILED: save/load I/O error, retryable, local state kept
//   - UNSAFE_CONTENT: embed sanitization removed content, informational only
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "component %q not found", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // treat as no-op
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodePersistence, origErr, "save website %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Editor taxonomy
	ErrCodeUnknownComponentType Code = "UNKNOWN_COMPONENT_TYPE"
	ErrCodeNotFound             Code = "NOT_FOUND"
	ErrCodeValidation           Code = "VALIDATION_FAILED"
	ErrCodePersistence          Code = "PERSISTENCE_FAILED"
	ErrCodeUnsafeContent        Code = "UNSAFE_CONTENT"

	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"

	// Internal errors
	ErrCodeRender      Code = "RENDER_FAILED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Retryable reports whether the user should be offered a retry for err.
// Only persistence failures qualify; everything else is either a no-op or
// needs different input.
func Retryable(err error) bool {
	return Is(err, ErrCodePersistence)
}

// UnknownType returns the error used for registry lookup misses.
func UnknownType(typ string) *Error {
	return New(ErrCodeUnknownComponentType, "unknown component type %q", typ)
}

// NotFound returns the error used when a component id is absent.
func NotFound(id string) *Error {
	return New(ErrCodeNotFound, "component %q not found", id)
}

// Validation returns a validation failure for a single field.
func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field: field,
		Err:   New(ErrCodeValidation, format, args...),
	}
}

// ValidationError carries the field that failed so edit controls can show
// the message next to the right input.
type ValidationError struct {
	Field string
	Err   *Error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.Field)
}

// Unwrap exposes the coded error so Is(err, ErrCodeValidation) holds.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
