package parallel

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteExecution is matched by every *IncompleteError.
	ErrIncompleteExecution = errors.New("parallel: incomplete execution")

	// ErrPrecondition is matched by every *PreconditionError and by
	// validation failures that carry no error of their own.
	ErrPrecondition = errors.New("parallel: precondition violated")

	// ErrResourceExhausted is returned when the segment table or the task
	// set for an operation cannot be built.
	ErrResourceExhausted = errors.New("parallel: resources exhausted")

	// ErrUnknown wraps a panic recovered at the operation boundary.
	ErrUnknown = errors.New("parallel: unknown failure")
)

// IncompleteError reports that fewer tasks resolved than were submitted.
//
// The task failures (if any) can be accessed via errors.Unwrap.
type IncompleteError struct {
	Op       string
	Expected int
	Resolved int
	cause    error
}

func (e *IncompleteError) Error() string {
	msg := fmt.Sprintf("parallel: %s: incomplete execution: %d of %d tasks resolved", e.opName(), e.Resolved, e.Expected)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *IncompleteError) opName() string {
	if e.Op == "" {
		return "operation"
	}
	return e.Op
}

func (e *IncompleteError) Unwrap() error { return e.cause }

// Is reports whether target is ErrIncompleteExecution.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteExecution
}

// PreconditionError reports a destination too small for the operation.
type PreconditionError struct {
	Required  int
	Available int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("parallel: precondition violated: need %d elements, have %d", e.Required, e.Available)
}

// Is reports whether target is ErrPrecondition.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
