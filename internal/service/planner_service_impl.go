package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/db"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/google/uuid"
)

type plannerService struct {
	uow      db.UnitOfWork
	sched    *scheduler.Scheduler
	observer UseCaseObserver
}

func NewPlannerService(uow db.UnitOfWork, sched *scheduler.Scheduler, observers ...UseCaseObserver) PlannerService {
	return &plannerService{uow: uow, sched: sched, observer: useCaseObserverOrNoop(observers)}
}

// AutoFill offers candidates to the day one at a time, in the given order.
// A candidate is kept only if the day, including every candidate accepted
// before it, places it without pushing out a task that was placed before.
// Accepted tasks are stored in one transaction.
func (s *plannerService) AutoFill(ctx context.Context, req app.AutoFillRequest) (resp *app.AutoFillResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"day": req.Day, "candidates": len(req.Candidates)}
	defer func() {
		observe(ctx, s.observer, "auto-fill", startedAt, fields, err)
	}()

	if err = validateDay(req.Day); err != nil {
		return nil, err
	}
	cutoff := cutoffFor(req.Day, req.Now)
	resp = &app.AutoFillResponse{}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txBlocks := repository.NewSQLiteTimeBlockRepo(tx)

		day, err := txTasks.ListByDay(ctx, req.Day, false)
		if err != nil {
			return err
		}
		idx, err := loadBlockIndex(ctx, txBlocks)
		if err != nil {
			return err
		}

		baseline, err := s.sched.Schedule(idx.toSchedulerTasks(day), cutoff)
		if err != nil {
			return fmt.Errorf("scheduling %s: %w", req.Day, err)
		}
		placed := placedIDs(baseline)

		for _, c := range req.Candidates {
			c.Day = req.Day
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			if q, ok := domain.ParseQuality(string(c.Quality)); ok {
				c.Quality = q
			}
			if verr := c.Validate(); verr != nil {
				resp.Rejected = append(resp.Rejected, app.RejectedTask{Task: c, Reasons: []string{verr.Error()}})
				continue
			}
			f, err := s.sched.Check(idx.toSchedulerTask(c), idx.toSchedulerTasks(day), cutoff)
			if err != nil {
				return fmt.Errorf("checking %q: %w", c.Description, err)
			}
			if !f.Placeable {
				resp.Rejected = append(resp.Rejected, app.RejectedTask{Task: c, Reasons: issueMessages(f.Issues)})
				continue
			}
			if pushed := displaced(f.Result, placed); len(pushed) > 0 {
				reasons := make([]string, 0, len(pushed))
				for _, p := range pushed {
					reasons = append(reasons, fmt.Sprintf("Task %q would push out %q", c.Description, p.Description))
				}
				resp.Rejected = append(resp.Rejected, app.RejectedTask{Task: c, Reasons: reasons})
				continue
			}

			now := time.Now().UTC()
			c.CreatedAt = now
			c.UpdatedAt = now
			if err := txTasks.Create(ctx, c); err != nil {
				return fmt.Errorf("creating task %q: %w", c.Description, err)
			}
			day = append(day, c)
			placed = placedIDs(f.Result)
			resp.Accepted = append(resp.Accepted, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["accepted"] = len(resp.Accepted)
	fields["rejected"] = len(resp.Rejected)
	return resp, nil
}

func placedIDs(res *scheduler.Result) map[string]bool {
	ids := make(map[string]bool, len(res.Placed))
	for _, p := range res.Placed {
		ids[p.ID] = true
	}
	return ids
}

// displaced returns the tasks that were placed before and are unscheduled
// in res.
func displaced(res *scheduler.Result, before map[string]bool) []scheduler.Task {
	var out []scheduler.Task
	for _, u := range res.Unscheduled {
		if before[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

func issueMessages(issues []scheduler.Issue) []string {
	msgs := make([]string, 0, len(issues))
	for _, is := range issues {
		msgs = append(msgs, is.Message)
	}
	return msgs
}
