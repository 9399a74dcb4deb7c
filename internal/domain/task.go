package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/timeline"
)

// DayLayout is the storage and CLI format of a planning day.
const DayLayout = "2006-01-02"

type Task struct {
	ID           string
	ProjectID    *string
	Day          string
	Description  string
	EstimatedMin int
	Priority     *int
	Quality      Quality

	// Time constraint. ExactTime wins over any window; an explicit
	// WindowStart/WindowEnd pair wins over WindowName.
	ExactTime   string
	WindowName  string
	WindowStart string
	WindowEnd   string

	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasExplicitWindow reports whether the task carries its own window bounds.
func (t *Task) HasExplicitWindow() bool {
	return t.WindowStart != "" || t.WindowEnd != ""
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("task description is required")
	}
	if _, err := time.Parse(DayLayout, t.Day); err != nil {
		return fmt.Errorf("task %q day %q must be YYYY-MM-DD", t.Description, t.Day)
	}
	if t.EstimatedMin <= 0 {
		return fmt.Errorf("task %q estimated duration must be positive, got %d", t.Description, t.EstimatedMin)
	}
	if t.Priority != nil && *t.Priority < 0 {
		return fmt.Errorf("task %q priority must not be negative", t.Description)
	}
	if _, ok := ParseQuality(string(t.Quality)); !ok {
		return fmt.Errorf("task %q quality %q must be one of A, B, C, D", t.Description, t.Quality)
	}
	if t.ExactTime != "" {
		m, err := timeline.ParseClock(t.ExactTime)
		if err != nil {
			return fmt.Errorf("task %q exact time: %w", t.Description, err)
		}
		if m >= timeline.MinutesPerDay {
			return fmt.Errorf("task %q exact time: %w: 24:00 is the end of the day", t.Description, timeline.ErrInvalidClock)
		}
	}
	if t.HasExplicitWindow() {
		if t.WindowStart == "" || t.WindowEnd == "" {
			return fmt.Errorf("task %q window needs both start and end", t.Description)
		}
		block := TimeBlock{Name: t.WindowName, Start: t.WindowStart, End: t.WindowEnd}
		if block.Name == "" {
			block.Name = "window"
		}
		if err := block.Validate(); err != nil {
			return fmt.Errorf("task %q: %w", t.Description, err)
		}
	}
	return nil
}

// MarkDone completes the task. Completing twice keeps the first timestamp.
func (t *Task) MarkDone(now time.Time) {
	if t.Completed {
		return
	}
	t.Completed = true
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// Reopen reverses MarkDone.
func (t *Task) Reopen(now time.Time) {
	t.Completed = false
	t.CompletedAt = nil
	t.UpdatedAt = now
}
