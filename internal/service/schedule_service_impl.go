package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/google/uuid"
)

type scheduleService struct {
	tasks    repository.TaskRepo
	blocks   repository.TimeBlockRepo
	sched    *scheduler.Scheduler
	observer UseCaseObserver
}

func NewScheduleService(
	tasks repository.TaskRepo,
	blocks repository.TimeBlockRepo,
	sched *scheduler.Scheduler,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		tasks:    tasks,
		blocks:   blocks,
		sched:    sched,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) DaySchedule(ctx context.Context, req app.DayScheduleRequest) (resp *app.DayScheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"day": req.Day}
	defer func() {
		observe(ctx, s.observer, "day-schedule", startedAt, fields, err)
	}()

	if err = validateDay(req.Day); err != nil {
		return nil, err
	}

	var stored []*domain.Task
	stored, err = s.tasks.ListByDay(ctx, req.Day, false)
	if err != nil {
		return nil, err
	}
	var idx blockIndex
	idx, err = loadBlockIndex(ctx, s.blocks)
	if err != nil {
		return nil, err
	}

	cutoff := cutoffFor(req.Day, req.Now)
	var res *scheduler.Result
	res, err = s.sched.Schedule(idx.toSchedulerTasks(stored), cutoff)
	if err != nil {
		return nil, fmt.Errorf("scheduling %s: %w", req.Day, err)
	}
	recordResultFields(fields, res)

	byID := make(map[string]*domain.Task, len(stored))
	for _, t := range stored {
		byID[t.ID] = t
	}
	return &app.DayScheduleResponse{Day: req.Day, Cutoff: cutoff, Result: res, Tasks: byID}, nil
}

func (s *scheduleService) CanPlace(ctx context.Context, req app.CanPlaceRequest) (resp *app.CanPlaceResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"day": req.Day}
	defer func() {
		observe(ctx, s.observer, "can-place", startedAt, fields, err)
	}()

	if err = validateDay(req.Day); err != nil {
		return nil, err
	}
	if req.Candidate == nil {
		return nil, fmt.Errorf("candidate task is required")
	}

	var stored []*domain.Task
	stored, err = s.tasks.ListByDay(ctx, req.Day, false)
	if err != nil {
		return nil, err
	}
	var idx blockIndex
	idx, err = loadBlockIndex(ctx, s.blocks)
	if err != nil {
		return nil, err
	}

	resp, err = checkCandidate(s.sched, idx, stored, req.Candidate, cutoffFor(req.Day, req.Now))
	if err != nil {
		return nil, err
	}
	fields["placeable"] = resp.Placeable
	return resp, nil
}

// checkCandidate dry-runs candidate against existing. A candidate without
// an id gets a throwaway one so it can be told apart in the result.
func checkCandidate(sched *scheduler.Scheduler, idx blockIndex, existing []*domain.Task, candidate *domain.Task, cutoff *int) (*app.CanPlaceResponse, error) {
	c := idx.toSchedulerTask(candidate)
	if c.ID == "" {
		c.ID = "candidate-" + uuid.New().String()
	}
	f, err := sched.Check(c, idx.toSchedulerTasks(existing), cutoff)
	if err != nil {
		return nil, fmt.Errorf("checking %q: %w", candidate.Description, err)
	}
	return &app.CanPlaceResponse{Placeable: f.Placeable, Placement: f.Placement, Issues: f.Issues}, nil
}

func recordResultFields(fields map[string]any, res *scheduler.Result) {
	fields["placed"] = len(res.Placed)
	fields["unscheduled"] = len(res.Unscheduled)
	fields["gaps"] = len(res.Gaps)
	kinds := make(map[string]int)
	for _, is := range res.Issues {
		kinds[string(is.Kind)]++
	}
	fields["issue_kinds"] = kinds
}
