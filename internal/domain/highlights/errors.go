package highlights

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaViolation marks a service reply that does not match the
	// {start, content, end} record.
	ErrSchemaViolation = errors.New("highlight reply does not match schema")

	// ErrCancelled is returned by operator prompts after an interrupt or
	// end of input.
	ErrCancelled = errors.New("operation cancelled by operator")
)

// ServiceError wraps transport and API failures of the highlight service.
type ServiceError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// SchemaError reports why a reply was rejected. It matches ErrSchemaViolation
// with errors.Is.
func SchemaError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaViolation, fmt.Sprintf(format, args...))
}
