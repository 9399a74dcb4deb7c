package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/scheduler"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0m", -5: "0m", 45: "45m", 60: "1h", 90: "1h 30m", 1440: "24h"}
	for in, want := range tests {
		assert.Equal(t, want, FormatMinutes(in))
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC)
	tests := []struct {
		day  string
		want string
	}{
		{"2025-06-15", "Today"},
		{"2025-06-16", "Tomorrow"},
		{"2025-06-14", "Yesterday"},
		{"2025-06-20", "Fri Jun 20"},
		{"junk", "junk"},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, tt.want, DayLabel(tt.day, now))
		})
	}
}

func TestRenderLoad(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "[░░░░░░░░░░]   0%"},
		{0.5, "[█████░░░░░]  50%"},
		{1.5, "[██████████] 100%"},
		{-1, "[░░░░░░░░░░]   0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripANSI(RenderLoad(tt.pct, 10)))
	}
	assert.Equal(t, "[░░]   0%", stripANSI(RenderLoad(0, 1)), "width clamps to 2")
}

func TestRenderAlignedTable(t *testing.T) {
	out := stripANSI(RenderAlignedTable(
		[]string{"NAME", "MIN"},
		[]Align{AlignLeft, AlignRight},
		[][]string{{"a", "5"}, {"long", "120"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME  MIN", lines[0])
	assert.Equal(t, "a       5", lines[2])
	assert.Equal(t, "long  120", lines[3])

	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTree(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "root", Detail: "active"},
		{Title: "child one", Level: 1},
		{Title: "child two", Level: 1, IsLast: true, Detail: "archived"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "root"))
	assert.Contains(t, lines[0], "[ active ]")
	assert.Equal(t, "├─ child one", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "└─ child two"))
	assert.Empty(t, RenderTree(nil))
}

func TestFormatProjectList_NestsChildren(t *testing.T) {
	parent := &domain.Project{ID: "aaaaaaaa-1", Name: "Home", Status: domain.ProjectActive}
	child := &domain.Project{ID: "bbbbbbbb-2", Name: "Garden", Status: domain.ProjectArchived, ParentID: &parent.ID}
	orphanParent := "missing"
	orphan := &domain.Project{ID: "cccccccc-3", Name: "Orphan", Status: domain.ProjectActive, ParentID: &orphanParent}

	out := stripANSI(FormatProjectList([]*domain.Project{child, parent, orphan}))
	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "aaaaaaaa Home")
	assert.Contains(t, out, "└─ bbbbbbbb Garden")
	assert.Contains(t, out, "cccccccc Orphan")
	assert.Less(t, strings.Index(out, "Home"), strings.Index(out, "Garden"))

	assert.Equal(t, "No projects.\n", stripANSI(FormatProjectList(nil)))
}

func TestTaskConstraint(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{"exact", domain.Task{ExactTime: "09:00", WindowName: "morning"}, "at 09:00"},
		{"explicit window", domain.Task{WindowStart: "10:00", WindowEnd: "12:00"}, "10:00-12:00"},
		{"named explicit window", domain.Task{WindowName: "focus", WindowStart: "10:00", WindowEnd: "12:00"}, "focus 10:00-12:00"},
		{"named", domain.Task{WindowName: "evening"}, "evening"},
		{"floating", domain.Task{}, "anytime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaskConstraint(&tt.task))
		})
	}
}

func TestFormatTaskList(t *testing.T) {
	projectID := "pppppppp-1"
	prio := 2
	tasks := []*domain.Task{
		{ID: "11111111-a", Description: "Write", EstimatedMin: 90, Priority: &prio, Quality: domain.QualityA, ProjectID: &projectID},
		{ID: "22222222-b", Description: "Walk", EstimatedMin: 30, WindowName: "evening", Completed: true},
	}
	out := stripANSI(FormatTaskList(tasks, map[string]string{projectID: "Book"}))
	assert.Contains(t, out, "TASK")
	assert.Contains(t, out, "11111111")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "Book")
	assert.Contains(t, out, "evening")
	assert.Contains(t, out, "✔")

	assert.Equal(t, "No tasks.\n", stripANSI(FormatTaskList(nil, nil)))
}

func TestFormatTimeBlockList(t *testing.T) {
	out := stripANSI(FormatTimeBlockList([]*domain.TimeBlock{
		{Name: "morning", Start: "06:00", End: "12:00"},
		{Name: "night", Start: "22:00", End: "02:00"},
	}))
	assert.Contains(t, out, "morning")
	assert.Contains(t, out, "wraps midnight")
	assert.Equal(t, 1, strings.Count(out, "wraps midnight"))
}

func scheduleResponse(t *testing.T, cutoff *int) *app.DayScheduleResponse {
	t.Helper()
	res, err := scheduler.NewDefault().Schedule([]scheduler.Task{
		{ID: "s", Description: "Standup", DurationMin: 30, ExactTime: "09:00"},
		{ID: "w", Description: "Write", DurationMin: 60, Quality: "A"},
		{ID: "x", Description: "Late", DurationMin: 60, ExactTime: "23:30"},
	}, cutoff)
	require.NoError(t, err)
	return &app.DayScheduleResponse{Day: "2025-06-15", Cutoff: cutoff, Result: res}
}

func TestFormatSchedule(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	out := stripANSI(FormatSchedule(scheduleResponse(t, nil), now))

	assert.True(t, strings.HasPrefix(out, "TODAY  2025-06-15"))
	assert.NotContains(t, out, "planning from")
	assert.Contains(t, out, "1h 30m planned")

	write := strings.Index(out, "00:00-01:00")
	gap := strings.Index(out, "01:00-09:00")
	standup := strings.Index(out, "09:00-09:30")
	require.True(t, write >= 0 && gap >= 0 && standup >= 0, out)
	assert.Less(t, write, gap)
	assert.Less(t, gap, standup)
	assert.Contains(t, out, "unaccounted")
	assert.Contains(t, out, "at 09:00")

	assert.Contains(t, out, "UNSCHEDULED")
	assert.Contains(t, out, "○ Late")
	assert.Contains(t, out, "ERRORS")
	assert.Contains(t, out, `✖ Task "Late" doesn't fit in day`)
}

func TestFormatSchedule_Cutoff(t *testing.T) {
	cutoff := 10*60 + 5
	now := time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC)
	out := stripANSI(FormatSchedule(scheduleResponse(t, &cutoff), now))

	assert.True(t, strings.HasPrefix(out, "TOMORROW"))
	assert.Contains(t, out, "planning from 10:05")
	assert.Contains(t, out, "10:00-11:00", "the cutoff block starts on the grid")
	assert.Contains(t, out, "1h planned", "fixed tasks before the cutoff are not counted")
}

func TestFormatCanPlace(t *testing.T) {
	fits := stripANSI(FormatCanPlace(&app.CanPlaceResponse{
		Placeable: true,
		Placement: &scheduler.PlacedTask{StartMinute: 600, EndMinute: 645},
	}))
	assert.Equal(t, "✔ Fits 10:00-10:45\n", fits)

	miss := stripANSI(FormatCanPlace(&app.CanPlaceResponse{
		Issues: []scheduler.Issue{{Kind: scheduler.IssueCollision, Message: `Task "a" collides with "b"`}},
	}))
	assert.Equal(t, "✖ Does not fit\n✖ Task \"a\" collides with \"b\"\n", miss)
}

func TestFormatAutoFill(t *testing.T) {
	out := stripANSI(FormatAutoFill(&app.AutoFillResponse{
		Accepted: []*domain.Task{{Description: "Read", EstimatedMin: 30}},
		Rejected: []app.RejectedTask{{
			Task:    &domain.Task{Description: "Stretch"},
			Reasons: []string{`Task "Stretch" would push out "Read"`},
		}},
	}))
	assert.Contains(t, out, "1 accepted, 1 rejected")
	assert.Contains(t, out, "✔ Read  30m")
	assert.Contains(t, out, "✖ Stretch")
	assert.Contains(t, out, `would push out "Read"`)
}
