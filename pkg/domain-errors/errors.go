// Package domainerrors carries coded errors from services to transports.
//
// Services translate store and infrastructure failures (see pkg/platform/sentinel)
// into a Code; HTTP handlers map the Code onto a status without inspecting
// the underlying cause.
package domainerrors

import (
	"errors"
	"maps"
)

// Code classifies an error for transport mapping.
type Code string

const (
	CodeBadRequest  Code = "bad_request"
	CodeValidation  Code = "validation_error"
	CodeNotFound    Code = "not_found"
	CodeConflict    Code = "conflict"
	CodeInternal    Code = "internal_error"
	CodeTimeout     Code = "timeout"
	CodeUnavailable Code = "unavailable"
)

// Error is a coded domain error. Fields holds per-field messages for
// validation failures and is nil otherwise.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// NewValidation builds a validation error from a field -> message map.
func NewValidation(fields map[string]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "one or more validation errors occurred",
		Fields:  maps.Clone(fields),
	}
}

// HasCode reports whether err, or any error it wraps, is a domain error with code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the first domain error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
