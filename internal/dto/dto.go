package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/services"
)

// DateLayout is the wire format of project dates
const DateLayout = "2006-01-02"

// FormatHours renders a decimal rounded half-to-even to two places
func FormatHours(d decimal.Decimal) string {
	return d.RoundBank(2).StringFixed(2)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ProgrammerDTO represents a programmer in API responses
type ProgrammerDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Seniority    string    `json:"seniority"`
	Coefficient  string    `json:"coefficient"`
	ProjectCount *int64    `json:"project_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TaskDTO represents a task template in API responses
type TaskDTO struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	BaseTimeHours string    `json:"base_time_hours"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectTaskDTO represents an assignment with its effort
type ProjectTaskDTO struct {
	ID                   uint64         `json:"id"`
	StageID              uint64         `json:"stage_id"`
	TaskID               uint64         `json:"task_id"`
	ProgrammerID         *uint64        `json:"programmer_id"`
	Status               string         `json:"status"`
	Task                 *TaskDTO       `json:"task,omitempty"`
	Programmer           *ProgrammerDTO `json:"programmer,omitempty"`
	CalculatedTotalHours string         `json:"calculated_total_hours"`
}

// StageDTO represents a stage in API responses
type StageDTO struct {
	ID           uint64           `json:"id"`
	ProjectID    uint64           `json:"project_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	OrderIndex   int              `json:"order_index"`
	ProjectTasks []ProjectTaskDTO `json:"project_tasks"`
}

// ProjectDTO represents a project without its stages
type ProjectDTO struct {
	ID            uint64         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	StartDate     *string        `json:"start_date"`
	EndDate       *string        `json:"end_date"`
	ResponsibleID *uint64        `json:"responsible_id"`
	Responsible   *ProgrammerDTO `json:"responsible"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ProjectDetailDTO is the estimate view of a project
type ProjectDetailDTO struct {
	ProjectDTO
	Stages              []StageDTO `json:"stages"`
	TotalEstimatedHours string     `json:"total_estimated_hours"`
}

// StagePlanDTO is one stage of a suggested plan
type StagePlanDTO struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OrderIndex     int       `json:"order_index"`
	Tasks          []TaskDTO `json:"tasks"`
	EstimatedHours string    `json:"estimated_hours"`
}

// Conversion functions

// ToProgrammerDTO converts a Programmer model to ProgrammerDTO
func ToProgrammerDTO(p models.Programmer) ProgrammerDTO {
	return ProgrammerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Seniority:   p.Seniority,
		Coefficient: FormatHours(p.Coefficient),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProgrammerSummaryDTO includes the project count
func ToProgrammerSummaryDTO(s repository.ProgrammerSummary) ProgrammerDTO {
	dto := ToProgrammerDTO(s.Programmer)
	count := s.ProjectCount
	dto.ProjectCount = &count
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(t models.Task) TaskDTO {
	return TaskDTO{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Type:          t.Type,
		BaseTimeHours: FormatHours(t.BaseTimeHours),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToProjectTaskDTO converts a loaded ProjectTask, computing its hours
func ToProjectTaskDTO(pt models.ProjectTask) ProjectTaskDTO {
	return ProjectTaskDTO{
		ID:                   pt.ID,
		StageID:              pt.StageID,
		TaskID:               pt.TaskID,
		ProgrammerID:         pt.ProgrammerID,
		Status:               pt.Status,
		Task:                 taskPtr(pt.Task),
		Programmer:           programmerPtr(pt.Programmer),
		CalculatedTotalHours: FormatHours(estimation.AssignmentHours(pt.Task, pt.Programmer)),
	}
}

// ToStageDTO converts a Stage model with its preloaded assignments
func ToStageDTO(s models.Stage) StageDTO {
	dto := StageDTO{
		ID:           s.ID,
		ProjectID:    s.ProjectID,
		Name:         s.Name,
		Description:  s.Description,
		OrderIndex:   s.OrderIndex,
		ProjectTasks: make([]ProjectTaskDTO, len(s.ProjectTasks)),
	}
	for i, pt := range s.ProjectTasks {
		dto.ProjectTasks[i] = ToProjectTaskDTO(pt)
	}
	return dto
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(p models.Project) ProjectDTO {
	return ProjectDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		StartDate:     formatDate(p.StartDate),
		EndDate:       formatDate(p.EndDate),
		ResponsibleID: p.ResponsibleID,
		Responsible:   programmerPtr(p.Responsible),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProjectDetailDTO converts an estimate view. Each value is rounded on
// its own; the total is rounded from the exact sum.
func ToProjectDetailDTO(v estimation.ProjectView) ProjectDetailDTO {
	dto := ProjectDetailDTO{
		ProjectDTO: ProjectDTO{
			ID:            v.ID,
			Name:          v.Name,
			Description:   v.Description,
			StartDate:     formatDate(v.StartDate),
			EndDate:       formatDate(v.EndDate),
			ResponsibleID: v.ResponsibleID,
			Responsible:   programmerPtr(v.Responsible),
			CreatedAt:     v.CreatedAt,
			UpdatedAt:     v.UpdatedAt,
		},
		Stages:              make([]StageDTO, len(v.Stages)),
		TotalEstimatedHours: FormatHours(v.TotalEstimatedHours),
	}

	for i, stage := range v.Stages {
		sd := StageDTO{
			ID:           stage.ID,
			ProjectID:    stage.ProjectID,
			Name:         stage.Name,
			Description:  stage.Description,
			OrderIndex:   stage.OrderIndex,
			ProjectTasks: make([]ProjectTaskDTO, len(stage.ProjectTasks)),
		}
		for j, pt := range stage.ProjectTasks {
			sd.ProjectTasks[j] = ProjectTaskDTO{
				ID:                   pt.ID,
				StageID:              pt.StageID,
				TaskID:               pt.TaskID,
				ProgrammerID:         pt.ProgrammerID,
				Status:               pt.Status,
				Task:                 taskPtr(pt.Task),
				Programmer:           programmerPtr(pt.Programmer),
				CalculatedTotalHours: FormatHours(pt.CalculatedTotalHours),
			}
		}
		dto.Stages[i] = sd
	}

	return dto
}

// ToStagePlanDTOs converts suggested stages
func ToStagePlanDTOs(plans []services.StagePlan) []StagePlanDTO {
	out := make([]StagePlanDTO, len(plans))
	for i, plan := range plans {
		tasks := make([]TaskDTO, len(plan.Tasks))
		for j, task := range plan.Tasks {
			tasks[j] = ToTaskDTO(task)
		}
		out[i] = StagePlanDTO{
			Name:           plan.Name,
			Description:    plan.Description,
			OrderIndex:     plan.OrderIndex,
			Tasks:          tasks,
			EstimatedHours: FormatHours(plan.EstimatedHours),
		}
	}
	return out
}

func taskPtr(t *models.Task) *TaskDTO {
	if t == nil {
		return nil
	}
	dto := ToTaskDTO(*t)
	return &dto
}

func programmerPtr(p *models.Programmer) *ProgrammerDTO {
	if p == nil {
		return nil
	}
	dto := ToProgrammerDTO(*p)
	return &dto
}
