package repository

import (
	"context"

	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
)

// GormProgrammerRepository is a GORM implementation of ProgrammerRepository
type GormProgrammerRepository struct {
	db *gorm.DB
}

// NewProgrammerRepository creates a new ProgrammerRepository
func NewProgrammerRepository(db *gorm.DB) ProgrammerRepository {
	return &GormProgrammerRepository{db: db}
}

// Create creates a new programmer
func (r *GormProgrammerRepository) Create(ctx context.Context, programmer *models.Programmer) error {
	return r.db.WithContext(ctx).Create(programmer).Error
}

// FindByID finds a programmer by ID
func (r *GormProgrammerRepository) FindByID(ctx context.Context, id uint64) (*models.Programmer, error) {
	var programmer models.Programmer
	if err := r.db.WithContext(ctx).First(&programmer, id).Error; err != nil {
		return nil, err
	}
	return &programmer, nil
}

// FindByName finds the first programmer with the given name
func (r *GormProgrammerRepository) FindByName(ctx context.Context, name string) (*models.Programmer, error) {
	var programmer models.Programmer
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&programmer).Error; err != nil {
		return nil, err
	}
	return &programmer, nil
}

// List retrieves programmers ordered by ID with the number of projects
// each one is responsible for
func (r *GormProgrammerRepository) List(ctx context.Context, page utils.PaginationParams) ([]ProgrammerSummary, error) {
	db := r.db.WithContext(ctx)

	var programmers []models.Programmer
	if err := db.Scopes(database.Paginate(page)).Order("id ASC").Find(&programmers).Error; err != nil {
		return nil, err
	}

	summaries := make([]ProgrammerSummary, len(programmers))
	if len(programmers) == 0 {
		return summaries, nil
	}

	ids := make([]uint64, len(programmers))
	for i, p := range programmers {
		ids[i] = p.ID
	}

	var counts []struct {
		ResponsibleID uint64
		Total         int64
	}
	err := db.Model(&models.Project{}).
		Select("responsible_id, COUNT(*) AS total").
		Where("responsible_id IN ?", ids).
		Group("responsible_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		byID[c.ResponsibleID] = c.Total
	}

	for i, p := range programmers {
		summaries[i] = ProgrammerSummary{Programmer: p, ProjectCount: byID[p.ID]}
	}
	return summaries, nil
}

// Update updates a programmer
func (r *GormProgrammerRepository) Update(ctx context.Context, programmer *models.Programmer) error {
	return r.db.WithContext(ctx).Save(programmer).Error
}

// Exists reports whether a programmer with the ID exists
func (r *GormProgrammerRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Programmer{}, id)
}

// CountReferences counts projects and project tasks pointing at the programmer
func (r *GormProgrammerRepository) CountReferences(ctx context.Context, id uint64) (int64, error) {
	return countProgrammerReferences(r.db.WithContext(ctx), id)
}

// DeleteIfUnreferenced deletes a programmer unless a project or project task
// references it. Check and delete share one transaction.
func (r *GormProgrammerRepository) DeleteIfUnreferenced(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var programmer models.Programmer
		if err := tx.Select("id").First(&programmer, id).Error; err != nil {
			return err
		}

		refs, err := countProgrammerReferences(tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Resource: "programmer", ID: id, References: refs, kind: ErrProgrammerInUse}
		}

		return tx.Delete(&models.Programmer{}, id).Error
	})
}

func countProgrammerReferences(db *gorm.DB, id uint64) (int64, error) {
	var projects int64
	if err := db.Model(&models.Project{}).Where("responsible_id = ?", id).Count(&projects).Error; err != nil {
		return 0, err
	}

	var assignments int64
	if err := db.Model(&models.ProjectTask{}).Where("programmer_id = ?", id).Count(&assignments).Error; err != nil {
		return 0, err
	}

	return projects + assignments, nil
}

// exists counts rows of model's table with the given primary key.
func exists(db *gorm.DB, model interface{}, id uint64) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
