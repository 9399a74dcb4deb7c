package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayline/internal/db"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/testutil"
)

func setupRepos(t *testing.T) (
	repository.ProjectRepo,
	repository.TaskRepo,
	repository.TimeBlockRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteTimeBlockRepo(database),
		testutil.NewTestUoW(database)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}

// at returns a time on testutil.TestDay.
func at(hour, minute int) *time.Time {
	ts := time.Date(2025, 6, 15, hour, minute, 0, 0, time.UTC)
	return &ts
}

func newScheduler() *scheduler.Scheduler {
	return scheduler.NewDefault()
}
