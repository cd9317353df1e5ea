package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type indexDef struct {
	table   string
	name    string
	columns string
}

// Foreign keys used by the estimate graph fetch and the delete guards.
var indexes = []indexDef{
	{"projects", "idx_projects_responsible_id", "responsible_id"},
	{"stages", "idx_stages_project_order", "project_id, order_index"},
	{"project_tasks", "idx_project_tasks_stage_id", "stage_id"},
	{"project_tasks", "idx_project_tasks_task_id", "task_id"},
	{"project_tasks", "idx_project_tasks_programmer_id", "programmer_id"},
}

// AddIndexes creates the secondary indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}
