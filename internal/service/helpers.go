package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/scheduler"
)

// blockIndex maps lower-cased time block names to their blocks.
type blockIndex map[string]*domain.TimeBlock

func loadBlockIndex(ctx context.Context, blocks repository.TimeBlockRepo) (blockIndex, error) {
	list, err := blocks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading time blocks: %w", err)
	}
	idx := make(blockIndex, len(list))
	for _, b := range list {
		idx[strings.ToLower(b.Name)] = b
	}
	return idx, nil
}

// window resolves a task's time constraint. Explicit bounds win over the
// named block. An unknown name yields a window without bounds, which the
// scheduler reports as an invalid time block.
func (idx blockIndex) window(t *domain.Task) *scheduler.Window {
	if t.HasExplicitWindow() {
		return &scheduler.Window{Label: t.WindowName, Start: t.WindowStart, End: t.WindowEnd}
	}
	if t.WindowName == "" {
		return nil
	}
	b, ok := idx[strings.ToLower(t.WindowName)]
	if !ok {
		return &scheduler.Window{Label: t.WindowName}
	}
	return &scheduler.Window{Label: b.Name, Start: b.Start, End: b.End}
}

func (idx blockIndex) toSchedulerTask(t *domain.Task) scheduler.Task {
	return scheduler.Task{
		ID:          t.ID,
		Description: t.Description,
		DurationMin: t.EstimatedMin,
		Priority:    t.Priority,
		Quality:     string(t.Quality),
		ExactTime:   t.ExactTime,
		Window:      idx.window(t),
	}
}

func (idx blockIndex) toSchedulerTasks(tasks []*domain.Task) []scheduler.Task {
	out := make([]scheduler.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, idx.toSchedulerTask(t))
	}
	return out
}

// cutoffFor returns now's minute of the day when now falls on day, in now's
// own location. Any other day is scheduled from midnight.
func cutoffFor(day string, now *time.Time) *int {
	if now == nil || now.Format(domain.DayLayout) != day {
		return nil
	}
	m := now.Hour()*60 + now.Minute()
	return &m
}

func validateDay(day string) error {
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return fmt.Errorf("day %q must be YYYY-MM-DD", day)
	}
	return nil
}
