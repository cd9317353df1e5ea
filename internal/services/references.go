package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/project-estimation-api/internal/repository"
)

type existsFunc func(ctx context.Context, id uint64) (bool, error)

// references checks that foreign keys point at existing rows before writes.
type references struct {
	programmers repository.ProgrammerRepository
	tasks       repository.TaskRepository
	projects    repository.ProjectRepository
	stages      repository.StageRepository
}

func (r references) programmer(ctx context.Context, id *uint64) error {
	if id == nil {
		return nil
	}
	return ensure(ctx, r.programmers.Exists, *id, "programmer", ErrInvalidProgrammerReference)
}

func (r references) task(ctx context.Context, id uint64) error {
	return ensure(ctx, r.tasks.Exists, id, "task", ErrInvalidTaskReference)
}

func (r references) project(ctx context.Context, id uint64) error {
	return ensure(ctx, r.projects.Exists, id, "project", ErrInvalidProjectReference)
}

func (r references) stage(ctx context.Context, id uint64) error {
	return ensure(ctx, r.stages.Exists, id, "stage", ErrInvalidStageReference)
}

func (r references) projectTasks(ctx context.Context, inputs []ProjectTaskInput) error {
	for _, pt := range inputs {
		if err := r.task(ctx, pt.TaskID); err != nil {
			return err
		}
		if err := r.programmer(ctx, pt.ProgrammerID); err != nil {
			return err
		}
	}
	return nil
}

func ensure(ctx context.Context, exists existsFunc, id uint64, entity string, notFound error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check %s %d: %w", entity, id, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", notFound, entity, id)
	}
	return nil
}
