package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/dayline/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByDay returns the day's tasks in creation order, which is the
	// input order the scheduler relies on for fixed-time tie-breaking.
	ListByDay(ctx context.Context, day string, includeCompleted bool) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type TimeBlockRepo interface {
	Create(ctx context.Context, b *domain.TimeBlock) error
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.TimeBlock, error)
	List(ctx context.Context) ([]*domain.TimeBlock, error)
	Delete(ctx context.Context, id string) error
}
