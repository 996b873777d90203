package reconcile

import (
	"errors"
	"fmt"
)

// ErrEmptyPair is raised when a Pair has neither side set. It is a caller error.
var ErrEmptyPair = errors.New("reconcile: pair has no records")

// SchemaError reports a document that does not have the expected shape.
// It is recoverable: the document is excluded and the run continues.
type SchemaError struct {
	// Document is the file or object name.
	Document string
	// Reason describes what was missing.
	Reason string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema error in %s: %s: %v", e.Document, e.Reason, e.Err)
	}
	return fmt.Sprintf("schema error in %s: %s", e.Document, e.Reason)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewSchemaError builds a SchemaError with a formatted reason.
func NewSchemaError(document, format string, args ...any) *SchemaError {
	return &SchemaError{Document: document, Reason: fmt.Sprintf(format, args...)}
}

// IsSchemaError reports whether err is, or wraps, a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
