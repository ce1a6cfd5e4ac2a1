package table

import (
	"fmt"
)

// ValidationError is returned when a table, or the parameters used to process it, do not satisfy
// the preconditions of an operation (e.g. the table is empty, or a column has the wrong type).
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (err *ValidationError) Error() string {
	return err.Message
}
