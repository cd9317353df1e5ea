// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/pkg/logger/slogpretty"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database with foreign keys enforced.
// The pool is pinned to one connection so every query sees the same database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db, slogpretty.Discard()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// CreateProgrammer inserts a programmer with the given coefficient.
func CreateProgrammer(t testing.TB, db *gorm.DB, name, coefficient string) *models.Programmer {
	t.Helper()

	programmer := &models.Programmer{
		Name:        name,
		Seniority:   "Pleno",
		Coefficient: decimal.RequireFromString(coefficient),
	}
	if err := db.Create(programmer).Error; err != nil {
		t.Fatalf("create programmer: %v", err)
	}
	return programmer
}

// CreateTask inserts a development task template.
func CreateTask(t testing.TB, db *gorm.DB, name, hours string) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:          name,
		Description:   name + " description",
		Type:          models.TaskTypeDevelopment,
		BaseTimeHours: decimal.RequireFromString(hours),
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// CreateProject inserts a bare project.
func CreateProject(t testing.TB, db *gorm.DB, name string, responsibleID *uint64) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, ResponsibleID: responsibleID}
	if err := db.Omit("Responsible", "Stages").Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

// CreateStage inserts a stage of the project.
func CreateStage(t testing.TB, db *gorm.DB, projectID uint64, name string, orderIndex int) *models.Stage {
	t.Helper()

	stage := &models.Stage{ProjectID: projectID, Name: name, OrderIndex: orderIndex}
	if err := db.Omit("ProjectTasks").Create(stage).Error; err != nil {
		t.Fatalf("create stage: %v", err)
	}
	return stage
}

// CreateProjectTask assigns a task to a stage, optionally with a programmer.
func CreateProjectTask(t testing.TB, db *gorm.DB, stageID, taskID uint64, programmerID *uint64) *models.ProjectTask {
	t.Helper()

	pt := &models.ProjectTask{
		StageID:      stageID,
		TaskID:       taskID,
		ProgrammerID: programmerID,
		Status:       models.DefaultProjectTaskStatus,
	}
	if err := db.Omit("Task", "Programmer").Create(pt).Error; err != nil {
		t.Fatalf("create project task: %v", err)
	}
	return pt
}

// Scenario holds the IDs of the reference estimate fixture.
type Scenario struct {
	Project *models.Project
	StageA  *models.Stage
	StageB  *models.Stage
	Bob     *models.Programmer
	Charlie *models.Programmer
}

// CreateScenario builds: stage A (order 0) with 10.00h assigned to a 1.00
// programmer, stage B (order 1) with 4.00h assigned to a 0.75 programmer and
// 6.00h unassigned. The estimate is 19.00h. Stage B is inserted first.
func CreateScenario(t testing.TB, db *gorm.DB) Scenario {
	t.Helper()

	bob := CreateProgrammer(t, db, "Bob", "1.00")
	charlie := CreateProgrammer(t, db, "Charlie", "0.75")

	backend := CreateTask(t, db, "Backend API", "10.00")
	review := CreateTask(t, db, "Code review", "4.00")
	docs := CreateTask(t, db, "Documentation", "6.00")

	project := CreateProject(t, db, "Website", &bob.ID)
	stageB := CreateStage(t, db, project.ID, "B", 1)
	stageA := CreateStage(t, db, project.ID, "A", 0)

	CreateProjectTask(t, db, stageA.ID, backend.ID, &bob.ID)
	CreateProjectTask(t, db, stageB.ID, review.ID, &charlie.ID)
	CreateProjectTask(t, db, stageB.ID, docs.ID, nil)

	return Scenario{Project: project, StageA: stageA, StageB: stageB, Bob: bob, Charlie: charlie}
}
