// Package errs defines the error taxonomy shared across the application:
// validation failures block a single operation, connection failures abort a
// whole batch, extraction failures are swallowed per message.
package errs

import "fmt"

// ValidationError reports rejected user input. No state is mutated when one
// is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a named field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConnectionError reports an unreachable or unauthenticated external
// collaborator (store or mailbox). The operation aborts with no partial
// result.
type ConnectionError struct {
	Target string // "store" or "mailbox"
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that a single message yielded no usable
// transaction. The ingestor logs it and continues with the next message.
type ExtractionError struct {
	Subject string
	Field   string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed for %q (%s): %v", e.Subject, e.Field, e.Err)
	}
	return fmt.Sprintf("extraction failed for %q (%s)", e.Subject, e.Field)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
