package estimation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/models"
)

// ProjectView is a project with its full stage graph and computed effort.
type ProjectView struct {
	ID                  uint64
	Name                string
	Description         string
	StartDate           *time.Time
	EndDate             *time.Time
	ResponsibleID       *uint64
	Responsible         *models.Programmer
	Stages              []StageView
	TotalEstimatedHours decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type StageView struct {
	ID           uint64
	ProjectID    uint64
	Name         string
	Description  string
	OrderIndex   int
	ProjectTasks []ProjectTaskView
}

// ProjectTaskView is one assignment with its effort in hours.
type ProjectTaskView struct {
	ID                   uint64
	StageID              uint64
	TaskID               uint64
	ProgrammerID         *uint64
	Status               string
	Task                 *models.Task
	Programmer           *models.Programmer
	CalculatedTotalHours decimal.Decimal
}
