package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/constants"
	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
)

// PlanningService drafts stage plans from the task catalog. Drafts are not
// persisted; clients submit them through project creation.
type PlanningService struct {
	taskRepo  repository.TaskRepository
	aiService *AIService
}

// NewPlanningService creates a new PlanningService. aiService may be nil.
func NewPlanningService(taskRepo repository.TaskRepository, aiService *AIService) *PlanningService {
	return &PlanningService{
		taskRepo:  taskRepo,
		aiService: aiService,
	}
}

// StagePlan is a suggested stage with unassigned base-hour effort
type StagePlan struct {
	Name           string
	Description    string
	OrderIndex     int
	Tasks          []models.Task
	EstimatedHours decimal.Decimal
}

// SuggestStages drafts an ordered list of stages for a brief
func (s *PlanningService) SuggestStages(ctx context.Context, brief string) ([]StagePlan, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	catalog, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load task catalog: %w", err)
	}

	suggested, err := s.aiService.SuggestStagesFromBrief(ctx, brief, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest stages: %w", err)
	}

	if len(suggested) == 0 {
		return nil, ErrAINoStagesSuggested
	}
	if len(suggested) > constants.MaxSuggestedStages {
		suggested = suggested[:constants.MaxSuggestedStages]
	}

	byID := make(map[uint64]models.Task, len(catalog))
	for _, task := range catalog {
		byID[task.ID] = task
	}

	plans := make([]StagePlan, 0, len(suggested))
	for _, stage := range suggested {
		name := strings.TrimSpace(stage.Name)
		if name == "" {
			continue
		}

		plan := StagePlan{
			Name:           name,
			Description:    strings.TrimSpace(stage.Description),
			OrderIndex:     len(plans),
			EstimatedHours: decimal.Zero,
		}

		seen := make(map[uint64]bool, len(stage.TaskIDs))
		for _, id := range stage.TaskIDs {
			task, ok := byID[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			plan.Tasks = append(plan.Tasks, task)
			plan.EstimatedHours = plan.EstimatedHours.Add(estimation.AssignmentHours(&task, nil))
		}

		if len(plan.Tasks) == 0 {
			continue
		}
		plans = append(plans, plan)
	}

	if len(plans) == 0 {
		return nil, ErrAINoValidStages
	}

	return plans, nil
}
