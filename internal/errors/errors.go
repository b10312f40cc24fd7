// Package errors provides typed errors for configuration and adapter failures.
// Per-keystroke quantity failures are not errors; they travel as
// types.ErrorKind values inside results.
//
// A Type is itself an error, so callers test the category with the standard
// errors.Is or with IsType:
//
//	if errors.IsType(err, errors.TypeNotFound) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput is a malformed request or argument
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing is a preset or config file that could not be decoded
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig is a unit config, rule set or field definition that breaks
	// its invariants
	TypeConfig Type = "CONFIG_ERROR"

	// TypeConversion is a rejected unit conversion
	TypeConversion Type = "CONVERSION_ERROR"

	// TypeNotFound is an unknown field, unit or file
	TypeNotFound Type = "NOT_FOUND"

	// TypeNotSupported is an unsupported file format or output format
	TypeNotSupported Type = "NOT_SUPPORTED"
)

// Error lets a Type match through errors.Is
func (t Type) Error() string { return string(t) }

// Error is a categorised failure with optional cause and context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches a Type target against the error's own type. Causes are
// reached through Unwrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(Type)
	return ok && t == e.Type
}

// WithContext attaches a key/value pair, e.g. the scale of a failed conversion
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsType reports whether err or anything it wraps has type t
func IsType(err error, t Type) bool {
	return err != nil && stderrors.Is(err, t)
}

// Newf creates an error with a formatted message
func Newf(t Type, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a type and message to cause
func Wrap(t Type, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(t Type, cause error, format string, args ...interface{}) *Error {
	return Wrap(t, fmt.Sprintf(format, args...), cause)
}

// Input reports a malformed argument
func Input(message string) *Error {
	return &Error{Type: TypeInput, Message: message}
}

// Parsing reports a file that could not be decoded
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config reports a definition that breaks its invariants
func Config(message string) *Error {
	return &Error{Type: TypeConfig, Message: message}
}

// Configf is Config with a formatted message
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// NotFound reports an unknown field, unit or file
func NotFound(kind, name string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", kind, name)
}

// NotSupported reports a format or operation the tool does not handle
func NotSupported(what string) *Error {
	return Newf(TypeNotSupported, "not supported: %s", what)
}
