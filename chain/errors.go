package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExtraction is returned when the structured extraction
	// call produces text that does not parse as a JSON object. The engine
	// recovers from it by answering with the goal's fixed error text.
	ErrMalformedExtraction = errors.New("malformed extraction response")

	// ErrCascadeOverflow is returned when a single external turn exceeds
	// the internal transition limit, which indicates a cycle of silent
	// conditions or chained handoffs in the declared graph.
	ErrCascadeOverflow = errors.New("turn cascade exceeded transition limit")

	// ErrUnknownGoal is returned by Restore when a snapshot references a
	// goal label that is not part of the conversation's graph.
	ErrUnknownGoal = errors.New("unknown goal label")
)

// ValidationError reports that a field's extracted value was rejected by
// its validator. Its message is surfaced verbatim in the remediation
// prompt, so it should be phrased for the end user.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, v ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}
