package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/timeline"
	"github.com/google/uuid"
)

type timeBlockService struct {
	blocks repository.TimeBlockRepo
}

func NewTimeBlockService(blocks repository.TimeBlockRepo) TimeBlockService {
	return &timeBlockService{blocks: blocks}
}

func (s *timeBlockService) Create(ctx context.Context, b *domain.TimeBlock) error {
	b.Name = strings.TrimSpace(b.Name)
	if err := b.Validate(); err != nil {
		return err
	}
	// Stored as HH:MM so listings sort by start time.
	start, _ := timeline.ParseClock(b.Start)
	end, _ := timeline.ParseClock(b.End)
	b.Start = timeline.FormatClock(start)
	b.End = timeline.FormatClock(end)

	if _, err := s.blocks.GetByName(ctx, b.Name); err == nil {
		return fmt.Errorf("time block %q already exists", b.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now().UTC()
	return s.blocks.Create(ctx, b)
}

func (s *timeBlockService) List(ctx context.Context) ([]*domain.TimeBlock, error) {
	return s.blocks.List(ctx)
}

func (s *timeBlockService) Delete(ctx context.Context, name string) error {
	b, err := s.blocks.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.blocks.Delete(ctx, b.ID)
}

func (s *timeBlockService) Resolve(ctx context.Context, name string) (*domain.TimeBlock, error) {
	return s.blocks.GetByName(ctx, name)
}

func (s *timeBlockService) EnsureDefaults(ctx context.Context, defaults []domain.TimeBlock) (int, error) {
	created := 0
	for _, d := range defaults {
		_, err := s.blocks.GetByName(ctx, d.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return created, err
		}
		b := d
		if err := s.Create(ctx, &b); err != nil {
			return created, fmt.Errorf("seeding time block %q: %w", d.Name, err)
		}
		created++
	}
	return created, nil
}
