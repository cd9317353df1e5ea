package estimation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"gorm.io/gorm"
)

type stubLoader struct {
	project *models.Project
	err     error
}

func (s stubLoader) FindGraph(_ context.Context, _ uint64) (*models.Project, error) {
	return s.project, s.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func task(id uint64, hours string) *models.Task {
	return &models.Task{ID: id, Name: fmt.Sprintf("task-%d", id), Type: models.TaskTypeDevelopment, BaseTimeHours: dec(hours)}
}

func programmer(id uint64, coefficient string) *models.Programmer {
	return &models.Programmer{ID: id, Name: fmt.Sprintf("dev-%d", id), Seniority: "Pleno", Coefficient: dec(coefficient)}
}

// scenarioProject: Stage A(0) {10.00 x 1.00}, Stage B(1) {4.00 x 0.75, 6.00 unassigned}.
// Stages are stored out of order to exercise sorting.
func scenarioProject() *models.Project {
	bob := programmer(2, "1.00")
	charlie := programmer(3, "0.75")
	return &models.Project{
		ID:   1,
		Name: "Website",
		Stages: []models.Stage{
			{ID: 20, ProjectID: 1, Name: "B", OrderIndex: 1, ProjectTasks: []models.ProjectTask{
				{ID: 201, StageID: 20, TaskID: 11, ProgrammerID: &charlie.ID, Programmer: charlie, Task: task(11, "4.00"), Status: "pending"},
				{ID: 202, StageID: 20, TaskID: 12, Task: task(12, "6.00"), Status: "pending"},
			}},
			{ID: 10, ProjectID: 1, Name: "A", OrderIndex: 0, ProjectTasks: []models.ProjectTask{
				{ID: 101, StageID: 10, TaskID: 10, ProgrammerID: &bob.ID, Programmer: bob, Task: task(10, "10.00"), Status: "pending"},
			}},
		},
	}
}

func TestAssignmentHours(t *testing.T) {
	tests := []struct {
		name       string
		task       *models.Task
		programmer *models.Programmer
		want       string
	}{
		{"scaled by coefficient", task(1, "8.00"), programmer(1, "1.75"), "14.00"},
		{"unassigned keeps base", task(1, "5.50"), nil, "5.50"},
		{"missing task is zero", nil, programmer(1, "1.75"), "0.00"},
		{"zero base", task(1, "0.00"), programmer(1, "0.60"), "0.00"},
		{"four fractional digits stay exact", task(1, "1.11"), programmer(1, "0.33"), "0.3663"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignmentHours(tt.task, tt.programmer)
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestEstimate_NoStages(t *testing.T) {
	view := Estimate(models.Project{ID: 7, Name: "Empty"})

	assert.True(t, view.TotalEstimatedHours.IsZero())
	assert.Empty(t, view.Stages)
	assert.NotNil(t, view.Stages)
}

func TestEstimate_StageWithoutAssignments(t *testing.T) {
	view := Estimate(models.Project{ID: 7, Stages: []models.Stage{{ID: 1, Name: "Idle"}}})

	require.Len(t, view.Stages, 1)
	assert.Empty(t, view.Stages[0].ProjectTasks)
	assert.True(t, view.TotalEstimatedHours.IsZero())
}

func TestEstimate_Scenario(t *testing.T) {
	view := Estimate(*scenarioProject())

	require.Len(t, view.Stages, 2)
	assert.Equal(t, "A", view.Stages[0].Name)
	assert.Equal(t, "B", view.Stages[1].Name)

	assert.Equal(t, "10.00", view.Stages[0].ProjectTasks[0].CalculatedTotalHours.StringFixed(2))
	assert.Equal(t, "3.00", view.Stages[1].ProjectTasks[0].CalculatedTotalHours.StringFixed(2))
	assert.Equal(t, "6.00", view.Stages[1].ProjectTasks[1].CalculatedTotalHours.StringFixed(2))
	assert.Equal(t, "19.00", view.TotalEstimatedHours.StringFixed(2))
}

func TestEstimate_TieOnOrderIndexKeepsCreationOrder(t *testing.T) {
	project := models.Project{Stages: []models.Stage{
		{ID: 3, Name: "third", OrderIndex: 1},
		{ID: 2, Name: "second", OrderIndex: 0},
		{ID: 1, Name: "first", OrderIndex: 0},
	}}

	view := Estimate(project)

	names := []string{view.Stages[0].Name, view.Stages[1].Name, view.Stages[2].Name}
	assert.Equal(t, []string{"first", "second", "third"}, names)
	assert.Equal(t, "third", project.Stages[0].Name, "input must not be reordered")
}

func TestEstimate_TotalIsExactSumOfLines(t *testing.T) {
	project := models.Project{Stages: []models.Stage{
		{ID: 1, ProjectTasks: []models.ProjectTask{
			{ID: 1, Task: task(1, "1.11"), Programmer: programmer(1, "0.33")},
			{ID: 2, Task: task(2, "2.05"), Programmer: programmer(2, "1.75")},
			{ID: 3, Task: nil},
			{ID: 4, Task: task(4, "999.99"), Programmer: programmer(3, "9.99")},
		}},
	}}

	view := Estimate(project)

	sum := decimal.Zero
	for _, stage := range view.Stages {
		for _, pt := range stage.ProjectTasks {
			sum = sum.Add(pt.CalculatedTotalHours)
		}
	}
	assert.True(t, sum.Equal(view.TotalEstimatedHours))
	assert.Equal(t, "9993.8539", view.TotalEstimatedHours.String())
}

func TestEstimate_ReorderingStagesKeepsTotal(t *testing.T) {
	a := scenarioProject()
	b := scenarioProject()
	b.Stages[0], b.Stages[1] = b.Stages[1], b.Stages[0]

	assert.True(t, Estimate(*a).TotalEstimatedHours.Equal(Estimate(*b).TotalEstimatedHours))
}

func TestEstimate_ViewDoesNotAliasGraph(t *testing.T) {
	project := scenarioProject()
	view := Estimate(*project)

	project.Stages[1].ProjectTasks[0].Task.BaseTimeHours = dec("99.00")
	project.Stages[1].ProjectTasks[0].Programmer.Coefficient = dec("9.99")

	assert.Equal(t, "10.00", view.Stages[0].ProjectTasks[0].Task.BaseTimeHours.StringFixed(2))
	assert.Equal(t, "1.00", view.Stages[0].ProjectTasks[0].Programmer.Coefficient.StringFixed(2))
}

func TestGetProjectWithEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the estimate", func(t *testing.T) {
		agg := NewAggregator(stubLoader{project: scenarioProject()})

		view, err := agg.GetProjectWithEstimate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "19.00", view.TotalEstimatedHours.StringFixed(2))
	})

	t.Run("deterministic for an unchanged graph", func(t *testing.T) {
		agg := NewAggregator(stubLoader{project: scenarioProject()})

		first, err := agg.GetProjectWithEstimate(ctx, 1)
		require.NoError(t, err)
		second, err := agg.GetProjectWithEstimate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("gorm record not found maps to not found", func(t *testing.T) {
		agg := NewAggregator(stubLoader{err: fmt.Errorf("load graph: %w", gorm.ErrRecordNotFound)})

		view, err := agg.GetProjectWithEstimate(ctx, 99)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, ErrProjectNotFound)
		assert.NotErrorIs(t, err, ErrProcessing)
	})

	t.Run("nil project maps to not found", func(t *testing.T) {
		agg := NewAggregator(stubLoader{})

		_, err := agg.GetProjectWithEstimate(ctx, 99)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("storage fault is a processing error", func(t *testing.T) {
		cause := errors.New("connection reset")
		agg := NewAggregator(stubLoader{err: cause})

		view, err := agg.GetProjectWithEstimate(ctx, 5)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, ErrProcessing)
		assert.NotErrorIs(t, err, ErrProjectNotFound)

		var perr *ProcessingError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, uint64(5), perr.ProjectID)
		assert.Equal(t, cause, perr.Cause)
	})
}

func TestGetProjectWithEstimate_Concurrent(t *testing.T) {
	agg := NewAggregator(stubLoader{project: scenarioProject()})

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			view, err := agg.GetProjectWithEstimate(context.Background(), 1)
			if err == nil {
				results[i] = view.TotalEstimatedHours.StringFixed(2)
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "19.00", r)
	}
}
