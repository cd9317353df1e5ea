package repository

import (
	"context"

	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByName finds the first task with the given name
func (r *GormTaskRepository) FindByName(ctx context.Context, name string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks ordered by ID
func (r *GormTaskRepository) List(ctx context.Context, page utils.PaginationParams) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Scopes(database.Paginate(page)).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAll returns the whole catalog ordered by ID
func (r *GormTaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Exists reports whether a task with the ID exists
func (r *GormTaskRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Task{}, id)
}

// DeleteIfUnreferenced deletes a task unless a project task uses it
func (r *GormTaskRepository) DeleteIfUnreferenced(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Select("id").First(&task, id).Error; err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.ProjectTask{}).Where("task_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Resource: "task", ID: id, References: refs, kind: ErrTaskInUse}
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
