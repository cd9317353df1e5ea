package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/utils"
)

var (
	// ErrProgrammerInUse is returned when a programmer is still a project's
	// responsible or an assignee of a project task.
	ErrProgrammerInUse = errors.New("programmer repository: programmer is referenced")
	// ErrTaskInUse is returned when a task template is still used by a project task.
	ErrTaskInUse = errors.New("task repository: task is referenced")
)

// InUseError is returned by DeleteIfUnreferenced when rows still point at the
// record. It matches ErrProgrammerInUse or ErrTaskInUse.
type InUseError struct {
	Resource   string
	ID         uint64
	References int64
	kind       error
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d rows", e.Resource, e.ID, e.References)
}

func (e *InUseError) Is(target error) bool {
	return target == e.kind
}

// ProgrammerSummary is a programmer with the number of projects it is responsible for.
type ProgrammerSummary struct {
	models.Programmer
	ProjectCount int64
}

// ProgrammerRepository defines the interface for programmer data access
type ProgrammerRepository interface {
	// Create creates a new programmer
	Create(ctx context.Context, programmer *models.Programmer) error

	// FindByID finds a programmer by ID
	FindByID(ctx context.Context, id uint64) (*models.Programmer, error)

	// FindByName finds the first programmer with the given name
	FindByName(ctx context.Context, name string) (*models.Programmer, error)

	// List retrieves programmers with their project counts
	List(ctx context.Context, page utils.PaginationParams) ([]ProgrammerSummary, error)

	// Update updates a programmer
	Update(ctx context.Context, programmer *models.Programmer) error

	// Exists reports whether a programmer with the ID exists
	Exists(ctx context.Context, id uint64) (bool, error)

	// CountReferences counts projects and project tasks pointing at the programmer
	CountReferences(ctx context.Context, id uint64) (int64, error)

	// DeleteIfUnreferenced deletes a programmer unless something references it
	DeleteIfUnreferenced(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task template data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uint64) (*models.Task, error)
	FindByName(ctx context.Context, name string) (*models.Task, error)
	List(ctx context.Context, page utils.PaginationParams) ([]models.Task, error)

	// ListAll returns the whole catalog ordered by ID
	ListAll(ctx context.Context) ([]models.Task, error)

	Update(ctx context.Context, task *models.Task) error
	Exists(ctx context.Context, id uint64) (bool, error)

	// DeleteIfUnreferenced deletes a task unless a project task uses it
	DeleteIfUnreferenced(ctx context.Context, id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project without touching its associations
	Create(ctx context.Context, project *models.Project) error

	// CreateWithStages creates a project, its stages and their project tasks
	// in a single transaction
	CreateWithStages(ctx context.Context, project *models.Project) error

	// FindByID finds a project with its responsible programmer
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// FindGraph loads the project with responsible, ordered stages and
	// every assignment's task and programmer
	FindGraph(ctx context.Context, id uint64) (*models.Project, error)

	List(ctx context.Context, page utils.PaginationParams) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Exists(ctx context.Context, id uint64) (bool, error)

	// Delete deletes a project with its stages and project tasks
	Delete(ctx context.Context, id uint64) error
}

// StageRepository defines the interface for stage data access
type StageRepository interface {
	// Create creates a stage and any nested project tasks in a single transaction
	Create(ctx context.Context, stage *models.Stage) error

	// FindByID finds a stage with its project tasks, tasks and programmers
	FindByID(ctx context.Context, id uint64) (*models.Stage, error)

	List(ctx context.Context, page utils.PaginationParams) ([]models.Stage, error)
	Update(ctx context.Context, stage *models.Stage) error
	Exists(ctx context.Context, id uint64) (bool, error)

	// Delete deletes a stage with its project tasks
	Delete(ctx context.Context, id uint64) error
}

// ProjectTaskRepository defines the interface for assignment data access
type ProjectTaskRepository interface {
	Create(ctx context.Context, projectTask *models.ProjectTask) error

	// FindByID finds a project task with its task and programmer
	FindByID(ctx context.Context, id uint64) (*models.ProjectTask, error)

	Update(ctx context.Context, projectTask *models.ProjectTask) error
	Delete(ctx context.Context, id uint64) error
}
