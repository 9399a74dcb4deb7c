package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleService_DaySchedule(t *testing.T) {
	_, tasks, blocks, _ := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewScheduleService(tasks, blocks, newScheduler(), obs)

	require.NoError(t, blocks.Create(ctx, testutil.NewTestTimeBlock("Morning", "08:00", "12:00")))

	base := time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC)
	standup := testutil.NewTestTask("Standup", testutil.WithExactTime("09:00"), testutil.WithEstimate(15), testutil.WithCreatedAt(base))
	focus := testutil.NewTestTask("Focus", testutil.WithWindowName("morning"), testutil.WithEstimate(60), testutil.WithCreatedAt(base.Add(time.Second)))
	email := testutil.NewTestTask("Email", testutil.WithEstimate(30), testutil.WithCreatedAt(base.Add(2*time.Second)))
	done := testutil.NewTestTask("Done already", testutil.WithCompleted(base), testutil.WithCreatedAt(base.Add(3*time.Second)))
	for _, task := range []*domain.Task{standup, focus, email, done} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	resp, err := svc.DaySchedule(ctx, app.DayScheduleRequest{Day: testutil.TestDay})
	require.NoError(t, err)
	assert.Nil(t, resp.Cutoff)
	require.Len(t, resp.Result.Placed, 3)
	assert.Len(t, resp.Tasks, 3, "completed tasks are not scheduled")

	p, ok := resp.Result.Placement(focus.ID)
	require.True(t, ok)
	assert.Equal(t, 480, p.StartMinute, "named window resolves to the stored block")
	assert.Equal(t, "Morning", p.Window.Label)

	p, ok = resp.Result.Placement(email.ID)
	require.True(t, ok)
	assert.Equal(t, 0, p.StartMinute)

	require.NotEmpty(t, obs.events)
	ev := obs.last()
	assert.Equal(t, "day-schedule", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 3, ev.Fields["placed"])
}

func TestScheduleService_CutoffOnlyForToday(t *testing.T) {
	_, tasks, blocks, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewScheduleService(tasks, blocks, newScheduler())

	task := testutil.NewTestTask("Read", testutil.WithEstimate(30))
	require.NoError(t, tasks.Create(ctx, task))

	resp, err := svc.DaySchedule(ctx, app.DayScheduleRequest{Day: testutil.TestDay, Now: at(10, 0)})
	require.NoError(t, err)
	require.NotNil(t, resp.Cutoff)
	assert.Equal(t, 600, *resp.Cutoff)
	p, _ := resp.Result.Placement(task.ID)
	assert.Equal(t, 600, p.StartMinute)

	yesterday := at(10, 0).AddDate(0, 0, -1)
	resp, err = svc.DaySchedule(ctx, app.DayScheduleRequest{Day: testutil.TestDay, Now: &yesterday})
	require.NoError(t, err)
	assert.Nil(t, resp.Cutoff)
	p, _ = resp.Result.Placement(task.ID)
	assert.Equal(t, 0, p.StartMinute)
}

func TestScheduleService_UnknownWindowNameIsAnIssue(t *testing.T) {
	_, tasks, blocks, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewScheduleService(tasks, blocks, newScheduler())

	task := testutil.NewTestTask("Nap", testutil.WithWindowName("siesta"))
	require.NoError(t, tasks.Create(ctx, task))

	resp, err := svc.DaySchedule(ctx, app.DayScheduleRequest{Day: testutil.TestDay})
	require.NoError(t, err)
	require.Len(t, resp.Result.Unscheduled, 1)
	assert.Equal(t, []string{`Invalid time block for task "Nap"`}, resp.Result.Errors())
}

func TestScheduleService_BadDay(t *testing.T) {
	_, tasks, blocks, _ := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewScheduleService(tasks, blocks, newScheduler(), obs)

	_, err := svc.DaySchedule(context.Background(), app.DayScheduleRequest{Day: "tomorrow"})
	require.Error(t, err)
	assert.False(t, obs.last().Success)
}

func TestScheduleService_CanPlace(t *testing.T) {
	_, tasks, blocks, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewScheduleService(tasks, blocks, newScheduler())

	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask("Meeting", testutil.WithExactTime("14:00"), testutil.WithEstimate(60))))

	resp, err := svc.CanPlace(ctx, app.CanPlaceRequest{
		Day:       testutil.TestDay,
		Candidate: testutil.NewTestTask("Call", testutil.WithExactTime("14:30")),
	})
	require.NoError(t, err)
	assert.False(t, resp.Placeable)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, scheduler.IssueCollision, resp.Issues[0].Kind)
	assert.Equal(t, `Task "Call" collides with "Meeting"`, resp.Issues[0].Message)

	resp, err = svc.CanPlace(ctx, app.CanPlaceRequest{
		Day:       testutil.TestDay,
		Candidate: &domain.Task{Description: "Walk", EstimatedMin: 45, Day: testutil.TestDay},
	})
	require.NoError(t, err)
	assert.True(t, resp.Placeable)
	require.NotNil(t, resp.Placement)
	assert.Equal(t, 0, resp.Placement.StartMinute)

	stored, err := tasks.ListByDay(ctx, testutil.TestDay, true)
	require.NoError(t, err)
	assert.Len(t, stored, 1, "dry run stores nothing")

	_, err = svc.CanPlace(ctx, app.CanPlaceRequest{Day: testutil.TestDay})
	assert.Error(t, err)
}
