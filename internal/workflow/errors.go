package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/tablesmith/internal/types"
)

// InvalidStateError indicates an operation was requested in a stage
// that does not allow it.
type InvalidStateError struct {
	ID      uuid.UUID
	Stage   types.Stage
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("job %s in stage %s: %s", e.ID, e.Stage, e.Message)
}

// ValidationError indicates a malformed upload request.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid upload request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid upload request: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
