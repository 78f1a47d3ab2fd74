// Package errors provides structured error types for ripplegrid.
//
// Every error carries a machine-readable [Code]. [Error] is the general
// coded error with an optional cause; [PhaseError] reports grid passes run
// out of order.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing files
//   - PHASE_ORDER: Grid passes invoked out of order
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "item count must be positive, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Grid lifecycle errors
	ErrCodePhaseOrder Code = "PHASE_ORDER"

	// Internal errors
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

// coded is implemented by every error type in this package.
type coded interface {
	error
	ErrorCode() Code
}

// ErrorCode returns e.Code.
func (e *Error) ErrorCode() Code { return e.Code }

// Is reports whether the first coded error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the first coded error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// UserMessage strips the code prefix from coded errors. Other errors are
// returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	var p *PhaseError
	if errors.As(err, &p) {
		return p.Error()
	}
	return err.Error()
}

// PhaseError reports a grid pass invoked before the pass it depends on.
type PhaseError struct {
	Op       string // pass that was invoked, e.g. "compute"
	Requires string // pass that must complete first, e.g. "measure"
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s requires a completed %s pass", e.Op, e.Requires)
}

// ErrorCode always returns ErrCodePhaseOrder.
func (e *PhaseError) ErrorCode() Code { return ErrCodePhaseOrder }
