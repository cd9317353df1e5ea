package repository

import (
	"context"

	"github.com/yukikurage/project-estimation-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectTaskRepository is a GORM implementation of ProjectTaskRepository
type GormProjectTaskRepository struct {
	db *gorm.DB
}

// NewProjectTaskRepository creates a new ProjectTaskRepository
func NewProjectTaskRepository(db *gorm.DB) ProjectTaskRepository {
	return &GormProjectTaskRepository{db: db}
}

// Create creates a new project task
func (r *GormProjectTaskRepository) Create(ctx context.Context, projectTask *models.ProjectTask) error {
	if projectTask.Status == "" {
		projectTask.Status = models.DefaultProjectTaskStatus
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(projectTask).Error
}

// FindByID finds a project task with its task and programmer
func (r *GormProjectTaskRepository) FindByID(ctx context.Context, id uint64) (*models.ProjectTask, error) {
	var projectTask models.ProjectTask
	err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("Programmer").
		First(&projectTask, id).Error
	if err != nil {
		return nil, err
	}
	return &projectTask, nil
}

// Update updates a project task's own columns
func (r *GormProjectTaskRepository) Update(ctx context.Context, projectTask *models.ProjectTask) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(projectTask).Error
}

// Delete deletes a project task
func (r *GormProjectTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectTask{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
