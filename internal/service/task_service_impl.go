package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	blocks   repository.TimeBlockRepo
	schedule app.CanPlaceUseCase
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	blocks repository.TimeBlockRepo,
	schedule app.CanPlaceUseCase,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		blocks:   blocks,
		schedule: schedule,
		observer: useCaseObserverOrNoop(observers),
	}
}

// prepare normalizes and validates t for storage.
func (s *taskService) prepare(ctx context.Context, t *domain.Task) error {
	t.Description = strings.TrimSpace(t.Description)
	q, ok := domain.ParseQuality(string(t.Quality))
	if ok {
		t.Quality = q
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.WindowName != "" && !t.HasExplicitWindow() {
		b, err := s.blocks.GetByName(ctx, t.WindowName)
		if err != nil {
			return fmt.Errorf("task %q window: %w", t.Description, err)
		}
		t.WindowName = b.Name
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if err := s.prepare(ctx, t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) CreateChecked(ctx context.Context, t *domain.Task, now *time.Time, force bool) (resp *app.CanPlaceResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"day": t.Day, "force": force}
	defer func() {
		observe(ctx, s.observer, "create-task", startedAt, fields, err)
	}()

	if err = s.prepare(ctx, t); err != nil {
		return nil, err
	}
	resp, err = s.schedule.CanPlace(ctx, app.CanPlaceRequest{Day: t.Day, Candidate: t, Now: now})
	if err != nil {
		return nil, err
	}
	fields["placeable"] = resp.Placeable
	if !resp.Placeable && !force {
		return resp, fmt.Errorf("%w: %s", ErrNotPlaceable, strings.Join(resp.Messages(), "; "))
	}
	if err = s.Create(ctx, t); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByDay(ctx context.Context, day string, includeCompleted bool) ([]*domain.Task, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	return s.tasks.ListByDay(ctx, day, includeCompleted)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := s.prepare(ctx, t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Complete(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.MarkDone(time.Now().UTC())
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Reopen(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.Completed {
		return nil
	}
	t.Reopen(time.Now().UTC())
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// IsNotPlaceable reports whether err came from a failed feasibility check.
func IsNotPlaceable(err error) bool {
	return errors.Is(err, ErrNotPlaceable)
}
