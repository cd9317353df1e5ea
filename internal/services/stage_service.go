package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
)

// StageService handles stage business logic
type StageService struct {
	stageRepo repository.StageRepository
	refs      references
}

// NewStageService creates a new StageService
func NewStageService(
	stageRepo repository.StageRepository,
	projectRepo repository.ProjectRepository,
	programmerRepo repository.ProgrammerRepository,
	taskRepo repository.TaskRepository,
) *StageService {
	return &StageService{
		stageRepo: stageRepo,
		refs: references{
			programmers: programmerRepo,
			tasks:       taskRepo,
			projects:    projectRepo,
		},
	}
}

// CreateStageInput is a stage of an existing project with optional assignments
type CreateStageInput struct {
	ProjectID uint64
	StageInput
}

// UpdateStageInput holds the fields to change; nil fields are kept
type UpdateStageInput struct {
	Name        *string
	Description *string
	OrderIndex  *int
}

// CreateStage creates a stage and its assignments atomically
func (s *StageService) CreateStage(ctx context.Context, input CreateStageInput) (*models.Stage, error) {
	if err := s.refs.project(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if err := s.refs.projectTasks(ctx, input.ProjectTasks); err != nil {
		return nil, err
	}

	stage := buildStage(input.ProjectID, input.StageInput)
	if err := s.stageRepo.Create(ctx, &stage); err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	return s.GetStage(ctx, stage.ID)
}

// GetStage returns a stage with its assignments
func (s *StageService) GetStage(ctx context.Context, id uint64) (*models.Stage, error) {
	stage, err := s.stageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("failed to find stage: %w", err)
	}

	return stage, nil
}

// ListStages returns a page of stages
func (s *StageService) ListStages(ctx context.Context, page utils.PaginationParams) ([]models.Stage, error) {
	stages, err := s.stageRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return stages, nil
}

// UpdateStage applies the provided fields
func (s *StageService) UpdateStage(ctx context.Context, id uint64, input UpdateStageInput) (*models.Stage, error) {
	stage, err := s.GetStage(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		stage.Name = *input.Name
	}
	if input.Description != nil {
		stage.Description = *input.Description
	}
	if input.OrderIndex != nil {
		stage.OrderIndex = *input.OrderIndex
	}

	if err := s.stageRepo.Update(ctx, stage); err != nil {
		return nil, fmt.Errorf("failed to update stage: %w", err)
	}

	return stage, nil
}

// DeleteStage deletes a stage with its assignments
func (s *StageService) DeleteStage(ctx context.Context, id uint64) error {
	if err := s.stageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStageNotFound
		}
		return fmt.Errorf("failed to delete stage: %w", err)
	}

	return nil
}
