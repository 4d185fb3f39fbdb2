// Package errors provides structured error types for graphkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the codec, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - PARSE_*: GraphML decoding failures (always wrapped in graphml.ParseError)
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownType, "unrecognized type %q for key %q", typ, name)
//	if errors.Is(err, errors.ErrCodeUnknownType) {
//	    // Handle unknown attribute type
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedXML, origErr, "read token")
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
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeKindMismatch  Code = "INVALID_KIND"

	// GraphML decoding errors
	ErrCodeMalformedXML  Code = "PARSE_MALFORMED_XML"
	ErrCodeUnknownType   Code = "PARSE_UNKNOWN_TYPE"
	ErrCodeInvalidValue  Code = "PARSE_INVALID_VALUE"
	ErrCodeUnknownKey    Code = "PARSE_UNKNOWN_KEY"
	ErrCodeUnknownNode   Code = "PARSE_UNKNOWN_NODE"
	ErrCodeInvalidEdge   Code = "PARSE_INVALID_EDGE"
	ErrCodeDirectedness  Code = "PARSE_DIRECTEDNESS"
	ErrCodeNoGraph       Code = "PARSE_NO_GRAPH"
	ErrCodeUnsupportedML Code = "PARSE_UNSUPPORTED"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
