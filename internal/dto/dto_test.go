package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/models"
)

func TestFormatHours(t *testing.T) {
	tests := map[string]string{
		"19":      "19.00",
		"0":       "0.00",
		"0.3663":  "0.37",
		"1.125":   "1.12",
		"1.135":   "1.14",
		"14.0000": "14.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatHours(decimal.RequireFromString(in)), in)
	}
}

func TestToProjectDetailDTO_RoundsTotalFromExactSum(t *testing.T) {
	lines := []string{"0.125", "0.125", "0.125"}
	stage := estimation.StageView{ID: 1, Name: "S"}
	total := decimal.Zero
	for i, l := range lines {
		v := decimal.RequireFromString(l)
		total = total.Add(v)
		stage.ProjectTasks = append(stage.ProjectTasks, estimation.ProjectTaskView{ID: uint64(i + 1), CalculatedTotalHours: v})
	}

	dto := ToProjectDetailDTO(estimation.ProjectView{ID: 1, Stages: []estimation.StageView{stage}, TotalEstimatedHours: total})

	require.Len(t, dto.Stages[0].ProjectTasks, 3)
	assert.Equal(t, "0.12", dto.Stages[0].ProjectTasks[0].CalculatedTotalHours)
	assert.Equal(t, "0.38", dto.TotalEstimatedHours)
}

func TestToProjectDTO_Dates(t *testing.T) {
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	dto := ToProjectDTO(models.Project{ID: 1, Name: "P", StartDate: &start})

	require.NotNil(t, dto.StartDate)
	assert.Equal(t, "2025-02-03", *dto.StartDate)
	assert.Nil(t, dto.EndDate)
	assert.Nil(t, dto.Responsible)
}

func TestToProjectTaskDTO_ComputesHours(t *testing.T) {
	pt := models.ProjectTask{
		ID:         1,
		Task:       &models.Task{ID: 2, BaseTimeHours: decimal.RequireFromString("8")},
		Programmer: &models.Programmer{ID: 3, Coefficient: decimal.RequireFromString("1.75")},
	}

	dto := ToProjectTaskDTO(pt)
	assert.Equal(t, "14.00", dto.CalculatedTotalHours)
	assert.Equal(t, "8.00", dto.Task.BaseTimeHours)
	assert.Equal(t, "1.75", dto.Programmer.Coefficient)
}
