package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService handles task template business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// TaskInput holds the writable task fields
type TaskInput struct {
	Name          string
	Description   string
	Type          string
	BaseTimeHours decimal.Decimal
}

// CreateTask creates a new task template
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	task := &models.Task{
		Name:          input.Name,
		Description:   input.Description,
		Type:          input.Type,
		BaseTimeHours: input.BaseTimeHours,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks returns a page of tasks
func (s *TaskService) ListTasks(ctx context.Context, page utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask replaces a task's fields. Every assignment using the task sees
// the new base hours on its next estimate.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input TaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Name = input.Name
	task.Description = input.Description
	task.Type = input.Type
	task.BaseTimeHours = input.BaseTimeHours

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task that no assignment uses
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	err := s.taskRepo.DeleteIfUnreferenced(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTaskNotFound
	case errors.Is(err, repository.ErrTaskInUse):
		return err
	default:
		return fmt.Errorf("failed to delete task: %w", err)
	}
}
