package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectTaskService handles assignment business logic
type ProjectTaskService struct {
	projectTaskRepo repository.ProjectTaskRepository
	refs            references
}

// NewProjectTaskService creates a new ProjectTaskService
func NewProjectTaskService(
	projectTaskRepo repository.ProjectTaskRepository,
	stageRepo repository.StageRepository,
	programmerRepo repository.ProgrammerRepository,
	taskRepo repository.TaskRepository,
) *ProjectTaskService {
	return &ProjectTaskService{
		projectTaskRepo: projectTaskRepo,
		refs: references{
			programmers: programmerRepo,
			tasks:       taskRepo,
			stages:      stageRepo,
		},
	}
}

// CreateProjectTaskInput assigns a task to an existing stage
type CreateProjectTaskInput struct {
	StageID uint64
	ProjectTaskInput
}

// UpdateProjectTaskInput holds the fields to change; nil fields are kept, so
// an assignee can be replaced but not cleared.
type UpdateProjectTaskInput struct {
	ProgrammerID *uint64
	Status       *string
}

// CreateProjectTask creates an assignment after checking its references
func (s *ProjectTaskService) CreateProjectTask(ctx context.Context, input CreateProjectTaskInput) (*models.ProjectTask, error) {
	if err := s.refs.stage(ctx, input.StageID); err != nil {
		return nil, err
	}
	if err := s.refs.projectTasks(ctx, []ProjectTaskInput{input.ProjectTaskInput}); err != nil {
		return nil, err
	}

	projectTask := buildProjectTask(input.StageID, input.ProjectTaskInput)
	if err := s.projectTaskRepo.Create(ctx, &projectTask); err != nil {
		return nil, fmt.Errorf("failed to create project task: %w", err)
	}

	return s.GetProjectTask(ctx, projectTask.ID)
}

// GetProjectTask returns an assignment with its task and programmer
func (s *ProjectTaskService) GetProjectTask(ctx context.Context, id uint64) (*models.ProjectTask, error) {
	projectTask, err := s.projectTaskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectTaskNotFound
		}
		return nil, fmt.Errorf("failed to find project task: %w", err)
	}

	return projectTask, nil
}

// UpdateProjectTask changes the programmer and/or status of an assignment
func (s *ProjectTaskService) UpdateProjectTask(ctx context.Context, id uint64, input UpdateProjectTaskInput) (*models.ProjectTask, error) {
	projectTask, err := s.GetProjectTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ProgrammerID != nil {
		if err := s.refs.programmer(ctx, input.ProgrammerID); err != nil {
			return nil, err
		}
		projectTask.ProgrammerID = input.ProgrammerID
		projectTask.Programmer = nil
	}
	if input.Status != nil {
		projectTask.Status = *input.Status
	}

	if err := s.projectTaskRepo.Update(ctx, projectTask); err != nil {
		return nil, fmt.Errorf("failed to update project task: %w", err)
	}

	return s.GetProjectTask(ctx, id)
}

// DeleteProjectTask deletes an assignment
func (s *ProjectTaskService) DeleteProjectTask(ctx context.Context, id uint64) error {
	if err := s.projectTaskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectTaskNotFound
		}
		return fmt.Errorf("failed to delete project task: %w", err)
	}

	return nil
}
