package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (TaskService, repository.TaskRepo, repository.TimeBlockRepo) {
	_, tasks, blocks, _ := setupRepos(t)
	schedule := NewScheduleService(tasks, blocks, newScheduler())
	return NewTaskService(tasks, blocks, schedule), tasks, blocks
}

// farDay is never today, so no cutoff applies.
const farDay = "2001-01-01"

func TestTaskService_Create(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Day: farDay, Description: "  Stretch ", EstimatedMin: 10, Quality: "b"}
	require.NoError(t, svc.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Stretch", task.Description)
	assert.Equal(t, domain.QualityB, task.Quality)

	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fetched.EstimatedMin)
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	assert.Error(t, svc.Create(ctx, &domain.Task{Day: farDay, Description: "x", EstimatedMin: 0}))
	assert.Error(t, svc.Create(ctx, &domain.Task{Day: farDay, Description: "x", EstimatedMin: 10, ExactTime: "25:00"}))

	err := svc.Create(ctx, &domain.Task{Day: farDay, Description: "x", EstimatedMin: 10, WindowName: "siesta"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_Create_CanonicalWindowName(t *testing.T) {
	svc, _, blocks := newTaskService(t)
	ctx := context.Background()
	require.NoError(t, blocks.Create(ctx, testutil.NewTestTimeBlock("Evening", "18:00", "22:00")))

	task := &domain.Task{Day: farDay, Description: "Cook", EstimatedMin: 45, WindowName: "evening"}
	require.NoError(t, svc.Create(ctx, task))
	assert.Equal(t, "Evening", task.WindowName)
}

func TestTaskService_CreateChecked(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("All day", testutil.WithDay(farDay),
		testutil.WithExactTime("00:00"), testutil.WithEstimate(1440))))

	task := &domain.Task{Day: farDay, Description: "One more", EstimatedMin: 45}
	resp, err := svc.CreateChecked(ctx, task, nil, false)
	require.Error(t, err)
	assert.True(t, IsNotPlaceable(err))
	assert.Contains(t, err.Error(), `Task "One more" cannot be scheduled`)
	require.NotNil(t, resp)
	assert.False(t, resp.Placeable)

	stored, err := svc.ListByDay(ctx, farDay, false)
	require.NoError(t, err)
	assert.Len(t, stored, 1, "rejected task is not stored")

	resp, err = svc.CreateChecked(ctx, task, nil, true)
	require.NoError(t, err)
	assert.False(t, resp.Placeable)
	stored, err = svc.ListByDay(ctx, farDay, false)
	require.NoError(t, err)
	assert.Len(t, stored, 2, "force stores anyway")
}

func TestTaskService_CreateChecked_Placeable(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	task := &domain.Task{Day: farDay, Description: "Gym", EstimatedMin: 60, ExactTime: "18:00"}
	resp, err := svc.CreateChecked(ctx, task, nil, false)
	require.NoError(t, err)
	assert.True(t, resp.Placeable)
	require.NotNil(t, resp.Placement)
	assert.Equal(t, 1080, resp.Placement.StartMinute)
	assert.NotEmpty(t, task.ID)
}

func TestTaskService_CreateChecked_UsesCutoff(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	now := time.Date(2001, 1, 1, 23, 0, 0, 0, time.UTC)
	task := &domain.Task{Day: farDay, Description: "Late", EstimatedMin: 90}
	resp, err := svc.CreateChecked(ctx, task, &now, false)
	require.Error(t, err)
	assert.True(t, IsNotPlaceable(err), "only an hour is left after the cutoff")
	assert.False(t, resp.Placeable)

	other := now.AddDate(0, 0, -1)
	resp, err = svc.CreateChecked(ctx, task, &other, false)
	require.NoError(t, err, "now on another day does not cut")
	assert.Equal(t, 0, resp.Placement.StartMinute)
}

func TestTaskService_CompleteAndReopen(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Dishes")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, svc.Complete(ctx, task.ID))
	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Completed)
	require.NotNil(t, fetched.CompletedAt)
	first := *fetched.CompletedAt

	time.Sleep(time.Millisecond)
	require.NoError(t, svc.Complete(ctx, task.ID))
	fetched, err = svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(*fetched.CompletedAt), "completing twice keeps the first timestamp")

	require.NoError(t, svc.Reopen(ctx, task.ID))
	fetched, err = svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Completed)

	assert.ErrorIs(t, svc.Complete(ctx, "missing"), repository.ErrNotFound)
}

func TestTaskService_UpdateAndDelete(t *testing.T) {
	svc, tasks, _ := newTaskService(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Draft")
	require.NoError(t, tasks.Create(ctx, task))

	task.EstimatedMin = 90
	task.Quality = "a"
	require.NoError(t, svc.Update(ctx, task))
	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, fetched.EstimatedMin)
	assert.Equal(t, domain.QualityA, fetched.Quality)

	task.EstimatedMin = -5
	assert.Error(t, svc.Update(ctx, task))

	require.NoError(t, svc.Delete(ctx, task.ID))
	_, err = svc.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ListByDay(ctx, "not-a-day", false)
	assert.Error(t, err)
}
