// Package errors defines the engine's narrow error taxonomy. Every fallible
// operation returns a (code, message) pair rather than panicking; Code lets
// callers branch on the taxonomy without string matching.
package errors

import "fmt"

// Code identifies which of the three recognized error classes occurred.
type Code int

const (
	// BadJSON means the external collaborator's configuration text could
	// not be parsed.
	BadJSON Code = iota
	// BadLabels means the training labels are empty, not zero-based, not
	// contiguous, or contain only one distinct value.
	BadLabels
	// ValueError means a configuration value is out of range.
	ValueError
)

func (c Code) String() string {
	switch c {
	case BadJSON:
		return "BadJson"
	case BadLabels:
		return "BadLabels"
	case ValueError:
		return "ValueError"
	default:
		return "Unknown"
	}
}

// Error is the engine's single error type: a taxonomy code plus a message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an *Error for the given code.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is itself an *Error carrying the given code.
// It uses a direct type assertion, so a wrapped *Error is not recognized.
func IsCode(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
