package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing failures by where they occur in the pipeline.
const (
	// ErrConfig marks startup configuration problems. These are the only
	// errors that terminate the process; everything else is recovered.
	ErrConfig = "CONFIG"

	// ErrFacts marks a single system fact (uptime, a unit state, CPU
	// counters) that could not be read this cycle.
	ErrFacts = "FACTS"

	// ErrDriver marks a failed push to the display bus.
	ErrDriver = "DRIVER"
)

// ErrFactUnavailable is the sentinel for a data source that failed this
// cycle. The monitor loop substitutes an unknown presentation for the
// affected fact instead of aborting the cycle.
var ErrFactUnavailable = errors.New("fact unavailable")

// Error is a structured error carrying a code, a human message, an
// actionable suggestion, and an optional cause:
//
//	✗ <what failed>
//
//	  <why it failed>
//
//	  <how to fix it>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps a cause with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// FactUnavailable builds a FACTS error that matches ErrFactUnavailable
// under errors.Is, so the loop can recognize recoverable per-fact failures.
func FactUnavailable(fact string, cause error) *Error {
	return &Error{
		Code:    ErrFacts,
		Message: fmt.Sprintf("Could not read %s", fact),
		Cause:   fmt.Errorf("%w: %w", ErrFactUnavailable, cause),
	}
}

// Error implements the error interface with the formatted three-part output.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var oErr *Error
	if errors.As(err, &oErr) {
		return oErr.Code == code
	}
	return false
}
