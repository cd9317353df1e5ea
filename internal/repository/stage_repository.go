package repository

import (
	"context"

	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStageRepository is a GORM implementation of StageRepository
type GormStageRepository struct {
	db *gorm.DB
}

// NewStageRepository creates a new StageRepository
func NewStageRepository(db *gorm.DB) StageRepository {
	return &GormStageRepository{db: db}
}

// Create creates a stage and its nested project tasks atomically
func (r *GormStageRepository) Create(ctx context.Context, stage *models.Stage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createStage(tx, stage)
	})
}

// FindByID finds a stage with its assignments
func (r *GormStageRepository) FindByID(ctx context.Context, id uint64) (*models.Stage, error) {
	var stage models.Stage
	err := r.db.WithContext(ctx).
		Preload("ProjectTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("ProjectTasks.Task").
		Preload("ProjectTasks.Programmer").
		First(&stage, id).Error
	if err != nil {
		return nil, err
	}
	return &stage, nil
}

// List retrieves stages ordered by project, order index and ID
func (r *GormStageRepository) List(ctx context.Context, page utils.PaginationParams) ([]models.Stage, error) {
	var stages []models.Stage
	err := r.db.WithContext(ctx).
		Scopes(database.Paginate(page)).
		Order("project_id ASC, order_index ASC, id ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

// Update updates a stage's own columns
func (r *GormStageRepository) Update(ctx context.Context, stage *models.Stage) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(stage).Error
}

// Exists reports whether a stage with the ID exists
func (r *GormStageRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Stage{}, id)
}

// Delete deletes a stage with its project tasks
func (r *GormStageRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stage models.Stage
		if err := tx.Select("id").First(&stage, id).Error; err != nil {
			return err
		}

		if err := tx.Where("stage_id = ?", id).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Stage{}, id).Error
	})
}

// createStage inserts a stage and then each nested project task. It must run
// inside a transaction.
func createStage(tx *gorm.DB, stage *models.Stage) error {
	if err := tx.Omit(clause.Associations).Create(stage).Error; err != nil {
		return err
	}

	for i := range stage.ProjectTasks {
		pt := &stage.ProjectTasks[i]
		pt.StageID = stage.ID
		if pt.Status == "" {
			pt.Status = models.DefaultProjectTaskStatus
		}
		if err := tx.Omit(clause.Associations).Create(pt).Error; err != nil {
			return err
		}
	}

	return nil
}
