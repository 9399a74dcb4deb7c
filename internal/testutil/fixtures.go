package testutil

import (
	"time"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/google/uuid"
)

// TestDay is the planning day used by fixtures unless overridden.
const TestDay = "2025-06-15"

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithParentProject(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ParentID = &id
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithDay(day string) TaskOption {
	return func(t *domain.Task) {
		t.Day = day
	}
}

func WithEstimate(min int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMin = min
	}
}

func WithPriority(p int) TaskOption {
	return func(t *domain.Task) {
		t.Priority = &p
	}
}

func WithQuality(q domain.Quality) TaskOption {
	return func(t *domain.Task) {
		t.Quality = q
	}
}

func WithExactTime(at string) TaskOption {
	return func(t *domain.Task) {
		t.ExactTime = at
	}
}

func WithWindow(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.WindowStart = start
		t.WindowEnd = end
	}
}

func WithWindowName(name string) TaskOption {
	return func(t *domain.Task) {
		t.WindowName = name
	}
}

func WithProject(id string) TaskOption {
	return func(t *domain.Task) {
		t.ProjectID = &id
	}
}

func WithCompleted(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
		t.CompletedAt = &at
	}
}

// WithCreatedAt pins creation time, which fixes the task's position in
// ListByDay results.
func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func NewTestTask(description string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:           uuid.New().String(),
		Day:          TestDay,
		Description:  description,
		EstimatedMin: 30,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestTimeBlock(name, start, end string) *domain.TimeBlock {
	return &domain.TimeBlock{
		ID:        uuid.New().String(),
		Name:      name,
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC(),
	}
}
