// Package estimation computes effort estimates for a project graph.
package estimation

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"gorm.io/gorm"
)

// ProjectGraphLoader loads a project with its responsible programmer, its
// stages ordered by order_index then id, and every stage's assignments with
// their task and programmer.
type ProjectGraphLoader interface {
	FindGraph(ctx context.Context, projectID uint64) (*models.Project, error)
}

// Aggregator builds ProjectViews. It holds no mutable state and is safe for
// concurrent use.
type Aggregator struct {
	loader ProjectGraphLoader
}

func NewAggregator(loader ProjectGraphLoader) *Aggregator {
	return &Aggregator{loader: loader}
}

// GetProjectWithEstimate loads the project graph and annotates it with
// per-assignment and total hours.
func (a *Aggregator) GetProjectWithEstimate(ctx context.Context, projectID uint64) (*ProjectView, error) {
	project, err := a.loader.FindGraph(ctx, projectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, &ProcessingError{ProjectID: projectID, Cause: err}
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	view := Estimate(*project)
	return &view, nil
}

// Estimate computes the view for an already loaded project graph.
func Estimate(project models.Project) ProjectView {
	view := ProjectView{
		ID:                  project.ID,
		Name:                project.Name,
		Description:         project.Description,
		StartDate:           copyTime(project.StartDate),
		EndDate:             copyTime(project.EndDate),
		ResponsibleID:       copyID(project.ResponsibleID),
		Responsible:         copyProgrammer(project.Responsible),
		Stages:              make([]StageView, 0, len(project.Stages)),
		TotalEstimatedHours: decimal.Zero,
		CreatedAt:           project.CreatedAt,
		UpdatedAt:           project.UpdatedAt,
	}

	stages := make([]models.Stage, len(project.Stages))
	copy(stages, project.Stages)
	sort.SliceStable(stages, func(i, j int) bool {
		if stages[i].OrderIndex != stages[j].OrderIndex {
			return stages[i].OrderIndex < stages[j].OrderIndex
		}
		return stages[i].ID < stages[j].ID
	})

	total := decimal.Zero
	for _, stage := range stages {
		sv := StageView{
			ID:           stage.ID,
			ProjectID:    stage.ProjectID,
			Name:         stage.Name,
			Description:  stage.Description,
			OrderIndex:   stage.OrderIndex,
			ProjectTasks: make([]ProjectTaskView, 0, len(stage.ProjectTasks)),
		}

		for _, pt := range stage.ProjectTasks {
			hours := AssignmentHours(pt.Task, pt.Programmer)
			total = total.Add(hours)

			sv.ProjectTasks = append(sv.ProjectTasks, ProjectTaskView{
				ID:                   pt.ID,
				StageID:              pt.StageID,
				TaskID:               pt.TaskID,
				ProgrammerID:         copyID(pt.ProgrammerID),
				Status:               pt.Status,
				Task:                 copyTask(pt.Task),
				Programmer:           copyProgrammer(pt.Programmer),
				CalculatedTotalHours: hours,
			})
		}

		view.Stages = append(view.Stages, sv)
	}

	view.TotalEstimatedHours = total
	return view
}

// AssignmentHours is the effort of one assignment: base hours scaled by the
// programmer's coefficient, base hours when unassigned, zero without a task.
func AssignmentHours(task *models.Task, programmer *models.Programmer) decimal.Decimal {
	if task == nil {
		return decimal.Zero
	}
	if programmer == nil {
		return task.BaseTimeHours
	}
	return task.BaseTimeHours.Mul(programmer.Coefficient)
}

func copyID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyTask(t *models.Task) *models.Task {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyProgrammer(p *models.Programmer) *models.Programmer {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
