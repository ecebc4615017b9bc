// Package errors provides the error-code-oriented failure type returned by
// block and simplefs. Every fallible operation other than
// simplefs.FileSystem.Check (which aggregates its findings into a
// *multierror.Error) returns a DriverError instead of a bare fmt.Errorf
// string, so callers can match the sentinel with errors.Is no matter what
// context got attached to it.
package errors

import "fmt"

// DriverError is the failure type returned by the fallible operations of
// block and simplefs.
type DriverError interface {
	error
	// WithMessage returns a copy of the error with additional context
	// appended; called on a bare Code, the message replaces the code's own
	// text. errors.Is still matches against the original Code.
	WithMessage(message string) DriverError
	// Wrap attaches an underlying cause (e.g. an *os.PathError) for
	// errors.Unwrap, while keeping the sentinel matchable.
	Wrap(err error) DriverError
	// Unwrap exposes both the original Code and, if present, the wrapped
	// cause, per the Go 1.20+ multi-error Unwrap convention, so
	// errors.Is/errors.As can match against either one.
	Unwrap() []error
}

type wrappedError struct {
	code    Code
	message string
	cause   error
}

func (e wrappedError) Error() string {
	return e.message
}

func (e wrappedError) WithMessage(message string) DriverError {
	return wrappedError{
		code:    e.code,
		message: fmt.Sprintf("%s: %s", e.message, message),
		cause:   e.cause,
	}
}

func (e wrappedError) Wrap(err error) DriverError {
	return wrappedError{
		code:    e.code,
		message: fmt.Sprintf("%s: %s", e.message, err.Error()),
		cause:   err,
	}
}

func (e wrappedError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.code, e.cause}
	}
	return []error{e.code}
}
