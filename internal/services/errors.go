package services

import (
	"errors"

	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/repository"
)

var (
	ErrProgrammerNotFound  = errors.New("programmer not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrStageNotFound       = errors.New("stage not found")
	ErrProjectTaskNotFound = errors.New("project task not found")

	// ErrProjectNotFound is shared with the estimate so callers check one sentinel.
	ErrProjectNotFound = estimation.ErrProjectNotFound

	// Deletes blocked by references return a *InUseError matching these.
	ErrProgrammerInUse = repository.ErrProgrammerInUse
	ErrTaskInUse       = repository.ErrTaskInUse

	ErrInvalidTaskReference       = errors.New("referenced task does not exist")
	ErrInvalidProgrammerReference = errors.New("referenced programmer does not exist")
	ErrInvalidProjectReference    = errors.New("referenced project does not exist")
	ErrInvalidStageReference      = errors.New("referenced stage does not exist")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoStagesSuggested    = errors.New("AI did not suggest any stages")
	ErrAINoValidStages        = errors.New("no valid stages could be built from AI output")
)

type InUseError = repository.InUseError

// IsInvalidReference reports whether err is one of the reference errors.
func IsInvalidReference(err error) bool {
	return errors.Is(err, ErrInvalidTaskReference) ||
		errors.Is(err, ErrInvalidProgrammerReference) ||
		errors.Is(err, ErrInvalidProjectReference) ||
		errors.Is(err, ErrInvalidStageReference)
}
