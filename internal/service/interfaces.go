package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
)

// ErrNotPlaceable is returned by TaskService.CreateChecked when the task
// would not fit the day and force was not requested.
var ErrNotPlaceable = errors.New("task cannot be placed")

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type TimeBlockService interface {
	Create(ctx context.Context, b *domain.TimeBlock) error
	List(ctx context.Context) ([]*domain.TimeBlock, error)
	Delete(ctx context.Context, name string) error
	// Resolve looks a block up by name, ignoring case.
	Resolve(ctx context.Context, name string) (*domain.TimeBlock, error)
	// EnsureDefaults creates every block whose name is not taken yet.
	EnsureDefaults(ctx context.Context, blocks []domain.TimeBlock) (int, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	// CreateChecked runs a feasibility check before saving, with now as the
	// cutoff when t is for today. Unless force is set, a task that would not
	// be placed is rejected with ErrNotPlaceable and nothing is stored. The
	// check result is returned either way.
	CreateChecked(ctx context.Context, t *domain.Task, now *time.Time, force bool) (*app.CanPlaceResponse, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByDay(ctx context.Context, day string, includeCompleted bool) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Complete(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ScheduleService interface {
	app.DayScheduleUseCase
	app.CanPlaceUseCase
}

type PlannerService interface {
	app.AutoFillUseCase
}
