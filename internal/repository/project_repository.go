package repository

import (
	"context"
	"database/sql"

	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project without its associations
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// CreateWithStages creates the project, its stages and their project tasks
// atomically. IDs are written back into the passed tree.
func (r *GormProjectRepository) CreateWithStages(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}

		for i := range project.Stages {
			stage := &project.Stages[i]
			stage.ProjectID = project.ID
			if err := createStage(tx, stage); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a project with its responsible programmer
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Preload("Responsible").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// graphTxOptions pins every preload of FindGraph to one snapshot. Postgres
// defaults to READ COMMITTED, where each preload would see its own snapshot.
var graphTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// FindGraph loads the complete project graph inside one read-only
// repeatable-read transaction.
func (r *GormProjectRepository) FindGraph(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Responsible").
			Preload("Stages", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_index ASC, id ASC")
			}).
			Preload("Stages.ProjectTasks", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			}).
			Preload("Stages.ProjectTasks.Task").
			Preload("Stages.ProjectTasks.Programmer").
			First(&project, id).Error
	}, graphTxOptions)
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves projects ordered by ID with their responsible programmers
func (r *GormProjectRepository) List(ctx context.Context, page utils.PaginationParams) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(database.Paginate(page)).
		Preload("Responsible").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project's own columns
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Exists reports whether a project with the ID exists
func (r *GormProjectRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Project{}, id)
}

// Delete deletes a project and everything below it
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id").First(&project, id).Error; err != nil {
			return err
		}

		stageIDs := tx.Model(&models.Stage{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("stage_id IN (?)", stageIDs).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Stage{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}
