package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	aggregator  *estimation.Aggregator
	refs        references
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	programmerRepo repository.ProgrammerRepository,
	taskRepo repository.TaskRepository,
	aggregator *estimation.Aggregator,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		aggregator:  aggregator,
		refs: references{
			programmers: programmerRepo,
			tasks:       taskRepo,
			projects:    projectRepo,
		},
	}
}

// ProjectInput holds the writable project fields
type ProjectInput struct {
	Name          string
	Description   string
	StartDate     *time.Time
	EndDate       *time.Time
	ResponsibleID *uint64
}

// CreateProjectInput is a project with an optional nested stage tree
type CreateProjectInput struct {
	ProjectInput
	Stages []StageInput
}

// StageInput describes a stage created together with its parent
type StageInput struct {
	Name         string
	Description  string
	OrderIndex   int
	ProjectTasks []ProjectTaskInput
}

// ProjectTaskInput describes an assignment created together with its stage
type ProjectTaskInput struct {
	TaskID       uint64
	ProgrammerID *uint64
	Status       string
}

// CreateProject creates a project and its stage tree atomically and returns
// its estimate
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*estimation.ProjectView, error) {
	if err := s.refs.programmer(ctx, input.ResponsibleID); err != nil {
		return nil, err
	}
	for _, stage := range input.Stages {
		if err := s.refs.projectTasks(ctx, stage.ProjectTasks); err != nil {
			return nil, err
		}
	}

	project := &models.Project{
		Name:          input.Name,
		Description:   input.Description,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		ResponsibleID: input.ResponsibleID,
		Stages:        make([]models.Stage, len(input.Stages)),
	}
	for i, stage := range input.Stages {
		project.Stages[i] = buildStage(0, stage)
	}

	if err := s.projectRepo.CreateWithStages(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.GetProjectWithEstimate(ctx, project.ID)
}

// GetProjectWithEstimate returns the project graph annotated with hours
func (s *ProjectService) GetProjectWithEstimate(ctx context.Context, id uint64) (*estimation.ProjectView, error) {
	return s.aggregator.GetProjectWithEstimate(ctx, id)
}

// ListProjects returns a page of projects with their responsible programmers
func (s *ProjectService) ListProjects(ctx context.Context, page utils.PaginationParams) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// UpdateProject replaces the project's own fields. Stages are untouched.
func (s *ProjectService) UpdateProject(ctx context.Context, id uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.refs.programmer(ctx, input.ResponsibleID); err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Description = input.Description
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.ResponsibleID = input.ResponsibleID
	project.Responsible = nil

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.findProject(ctx, id)
}

// DeleteProject deletes a project with its stages and assignments
func (s *ProjectService) DeleteProject(ctx context.Context, id uint64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) findProject(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

func buildStage(projectID uint64, input StageInput) models.Stage {
	stage := models.Stage{
		ProjectID:    projectID,
		Name:         input.Name,
		Description:  input.Description,
		OrderIndex:   input.OrderIndex,
		ProjectTasks: make([]models.ProjectTask, len(input.ProjectTasks)),
	}
	for i, pt := range input.ProjectTasks {
		stage.ProjectTasks[i] = buildProjectTask(0, pt)
	}
	return stage
}

func buildProjectTask(stageID uint64, input ProjectTaskInput) models.ProjectTask {
	status := input.Status
	if status == "" {
		status = models.DefaultProjectTaskStatus
	}
	return models.ProjectTask{
		StageID:      stageID,
		TaskID:       input.TaskID,
		ProgrammerID: input.ProgrammerID,
		Status:       status,
	}
}
