package estimation

import (
	"errors"
	"fmt"
)

var (
	// ErrProjectNotFound is returned when no project has the requested id.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProcessing classifies every failure other than not-found.
	ErrProcessing = errors.New("estimation processing failed")
)

// ProcessingError reports a storage or loading fault while building an
// estimate. It matches ErrProcessing and never ErrProjectNotFound.
type ProcessingError struct {
	ProjectID uint64
	Cause     error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("estimate project %d: %v", e.ProjectID, e.Cause)
}

// Is reports ErrProcessing as the error's class. Cause is not exposed
// through Unwrap.
func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}
