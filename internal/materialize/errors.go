package materialize

import "fmt"

// DatabaseError represents a database-level materialization failure.
type DatabaseError struct {
	Name    string
	Message string
	Cause   error
}

func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("database %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("database %s: %s", e.Name, e.Message)
}

func (e *DatabaseError) Unwrap() error {
	return e.Cause
}
