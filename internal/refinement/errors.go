package refinement

import "fmt"

// GenerationError represents a schema generation failure where no plan
// could be obtained at all.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
