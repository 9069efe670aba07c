package synthesis

import "fmt"

// APICallError represents a failure calling the LLM provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("synthesis API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// DecodeError represents a structurally invalid LLM response
type DecodeError struct {
	Artifact string
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Artifact, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
