package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies tool invocation failures.
type ErrorKind string

const (
	KindToolNotFound         ErrorKind = "tool_not_found"
	KindInvalidOptions       ErrorKind = "invalid_options"
	KindInvalidInput         ErrorKind = "invalid_input"
	KindMalformedPayload     ErrorKind = "malformed_payload"
	KindUnsupportedOperation ErrorKind = "unsupported_operation"
)

// FieldError points at one offending option field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the structured failure returned from tool invocation. Message
// text is a complete sentence intended to be rendered verbatim to the
// end user.
type Error struct {
	Kind        ErrorKind    `json:"kind"`
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
	wrapped     error
}

func (e *Error) Error() string {
	if len(e.FieldErrors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// ErrNotFound builds a ToolNotFound error for an unknown id.
func ErrNotFound(id string) *Error {
	return &Error{Kind: KindToolNotFound, Message: fmt.Sprintf("tool not found: %s", id)}
}

// ErrInvalidOptions builds an InvalidOptions error carrying field-level detail.
func ErrInvalidOptions(fields []FieldError) *Error {
	return &Error{
		Kind:        KindInvalidOptions,
		Message:     "Options failed validation.",
		FieldErrors: fields,
	}
}

// ErrInvalidInput builds an InvalidInput error with a user-facing sentence.
func ErrInvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// ErrMalformed builds a MalformedPayload error for a domain-specific
// parse failure inside a tool body.
func ErrMalformed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindMalformedPayload, Message: fmt.Sprintf(format, args...)}
}

// ErrMalformedWrap is ErrMalformed with an underlying cause preserved
// for errors.Is/As.
func ErrMalformedWrap(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindMalformedPayload, Message: fmt.Sprintf(format, args...), wrapped: err}
}

// ErrUnsupported builds an UnsupportedOperation error for a requested
// combination that cannot be carried out.
func ErrUnsupported(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnsupportedOperation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error kind when err is (or wraps) a tool error.
func KindOf(err error) (ErrorKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a tool error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
