package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/project-estimation-api/internal/models"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/utils"
	"gorm.io/gorm"
)

// ProgrammerService handles programmer business logic
type ProgrammerService struct {
	programmerRepo repository.ProgrammerRepository
}

// NewProgrammerService creates a new ProgrammerService
func NewProgrammerService(programmerRepo repository.ProgrammerRepository) *ProgrammerService {
	return &ProgrammerService{programmerRepo: programmerRepo}
}

// ProgrammerInput holds the writable programmer fields
type ProgrammerInput struct {
	Name        string
	Seniority   string
	Coefficient decimal.Decimal
}

// CreateProgrammer creates a new programmer
func (s *ProgrammerService) CreateProgrammer(ctx context.Context, input ProgrammerInput) (*models.Programmer, error) {
	programmer := &models.Programmer{
		Name:        input.Name,
		Seniority:   input.Seniority,
		Coefficient: input.Coefficient,
	}

	if err := s.programmerRepo.Create(ctx, programmer); err != nil {
		return nil, fmt.Errorf("failed to create programmer: %w", err)
	}

	return programmer, nil
}

// GetProgrammer returns a programmer by ID
func (s *ProgrammerService) GetProgrammer(ctx context.Context, id uint64) (*models.Programmer, error) {
	programmer, err := s.programmerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgrammerNotFound
		}
		return nil, fmt.Errorf("failed to find programmer: %w", err)
	}

	return programmer, nil
}

// ListProgrammers returns a page of programmers with their project counts
func (s *ProgrammerService) ListProgrammers(ctx context.Context, page utils.PaginationParams) ([]repository.ProgrammerSummary, error) {
	programmers, err := s.programmerRepo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list programmers: %w", err)
	}

	return programmers, nil
}

// UpdateProgrammer replaces a programmer's fields
func (s *ProgrammerService) UpdateProgrammer(ctx context.Context, id uint64, input ProgrammerInput) (*models.Programmer, error) {
	programmer, err := s.GetProgrammer(ctx, id)
	if err != nil {
		return nil, err
	}

	programmer.Name = input.Name
	programmer.Seniority = input.Seniority
	programmer.Coefficient = input.Coefficient

	if err := s.programmerRepo.Update(ctx, programmer); err != nil {
		return nil, fmt.Errorf("failed to update programmer: %w", err)
	}

	return programmer, nil
}

// DeleteProgrammer deletes a programmer that nothing references
func (s *ProgrammerService) DeleteProgrammer(ctx context.Context, id uint64) error {
	err := s.programmerRepo.DeleteIfUnreferenced(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrProgrammerNotFound
	case errors.Is(err, repository.ErrProgrammerInUse):
		return err
	default:
		return fmt.Errorf("failed to delete programmer: %w", err)
	}
}
