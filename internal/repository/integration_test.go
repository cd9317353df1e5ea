//go:build integration

package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/estimation"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/testutil"
	"github.com/yukikurage/project-estimation-api/pkg/logger/slogpretty"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:17",
		tcpostgres.WithDatabase("estimation"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}

	pgDB, err = gorm.Open(postgres.Open(connStr), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		log.Fatalf("failed to connect to test postgres: %s", err)
	}

	if err := database.Migrate(pgDB, slogpretty.Discard()); err != nil {
		log.Fatalf("failed to run migrations: %s", err)
	}

	code := m.Run()

	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("could not stop postgres container: %s", err)
	}
	os.Exit(code)
}

func truncateTables(t *testing.T) {
	t.Helper()
	err := pgDB.Exec("TRUNCATE TABLE project_tasks, stages, projects, tasks, programmers RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func TestPostgres_EstimateScenario(t *testing.T) {
	truncateTables(t)
	sc := testutil.CreateScenario(t, pgDB)

	view, err := estimation.NewAggregator(NewProjectRepository(pgDB)).GetProjectWithEstimate(context.Background(), sc.Project.ID)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if got := view.TotalEstimatedHours.StringFixed(2); got != "19.00" {
		t.Fatalf("total = %s, want 19.00", got)
	}
	if view.Stages[0].Name != "A" {
		t.Fatalf("first stage = %s, want A", view.Stages[0].Name)
	}
}

func TestPostgres_DecimalColumnsKeepScale(t *testing.T) {
	truncateTables(t)
	p := testutil.CreateProgrammer(t, pgDB, "Alice", "1.75")

	var stored models.Programmer
	if err := pgDB.First(&stored, p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Coefficient.String() != "1.75" {
		t.Fatalf("coefficient = %s, want 1.75", stored.Coefficient)
	}
}

func TestPostgres_ProgrammerDeleteGuard(t *testing.T) {
	truncateTables(t)
	sc := testutil.CreateScenario(t, pgDB)

	err := NewProgrammerRepository(pgDB).DeleteIfUnreferenced(context.Background(), sc.Charlie.ID)
	if !errors.Is(err, ErrProgrammerInUse) {
		t.Fatalf("delete = %v, want ErrProgrammerInUse", err)
	}
}
