// Package scheduler places a single day's tasks on a discretized timeline.
//
// A run is three greedy first-fit layers over one call-scoped ledger:
// fixed-time tasks, then windowed tasks, then floating tasks. Whatever is
// left unoccupied after the cutoff is reported as gaps. Placement problems
// never abort a run; they become Issues and the task is listed as
// unscheduled.
package scheduler

import (
	"errors"

	"github.com/alexanderramin/dayline/internal/timeline"
)

var (
	// ErrInvalidTask reports a task with no id, a duplicate id or a
	// non-positive duration.
	ErrInvalidTask = errors.New("invalid task")

	// ErrInvalidCutoff reports a cutoff outside the day.
	ErrInvalidCutoff = errors.New("cutoff minute must be within 0-1439")
)

// Window is an approximate start range. End at or before Start wraps past
// midnight.
type Window struct {
	Label string
	Start string
	End   string
}

// Task is the scheduler's read-only view of a planned task.
type Task struct {
	ID          string
	Description string
	DurationMin int
	Priority    *int   // nil falls back to Policy.DefaultPriority
	Quality     string // "A".."D"; empty falls back to Policy.DefaultQuality
	ExactTime   string // HH:MM; takes precedence over Window
	Window      *Window
}

// PlacedTask is a task with its assigned block range.
type PlacedTask struct {
	Task
	Position    int
	Length      int
	StartMinute int
	EndMinute   int
}

// Gap is an unoccupied block run, [StartMinute, EndMinute).
type Gap struct {
	StartBlock  int
	Length      int
	StartMinute int
	EndMinute   int
	Minutes     int
}

// EntryKind tags a row of the merged day view.
type EntryKind string

const (
	EntryTask        EntryKind = "task"
	EntryGap         EntryKind = "unaccounted"
	EntryUnscheduled EntryKind = "unscheduled"
)

// Entry is one row of the merged day view. Exactly one of Task, Gap or
// Unscheduled is set, matching Kind.
type Entry struct {
	Kind        EntryKind
	Task        *PlacedTask
	Gap         *Gap
	Unscheduled *Task
}

// IssueKind classifies why a task was not placed where it asked to be.
type IssueKind string

const (
	IssueMalformedTime   IssueKind = "malformed_time"
	IssueOverflow        IssueKind = "overflow"
	IssueWindowMiss      IssueKind = "window_miss"
	IssueWindowRelocated IssueKind = "window_relocated"
	IssueExhausted       IssueKind = "exhausted"
	IssueCollision       IssueKind = "collision"
)

// Issue is a non-fatal placement problem for one task.
type Issue struct {
	TaskID  string
	Kind    IssueKind
	Message string
}

// Result is the outcome of one scheduling run.
type Result struct {
	Schedule    []Entry
	Placed      []PlacedTask
	Gaps        []Gap
	Unscheduled []Task
	Issues      []Issue
	CutoffBlock int
	Grid        timeline.Grid
}

// Errors returns the issue messages in the order they were recorded.
func (r *Result) Errors() []string {
	msgs := make([]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		msgs = append(msgs, is.Message)
	}
	return msgs
}

// Placement returns the placed task with the given id.
func (r *Result) Placement(id string) (PlacedTask, bool) {
	for _, p := range r.Placed {
		if p.ID == id {
			return p, true
		}
	}
	return PlacedTask{}, false
}

// IssuesFor returns the issues recorded against one task.
func (r *Result) IssuesFor(id string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.TaskID == id {
			out = append(out, is)
		}
	}
	return out
}

// OccupiedMinutes sums the block-rounded minutes of all placed tasks.
func (r *Result) OccupiedMinutes() int {
	total := 0
	for _, p := range r.Placed {
		total += p.EndMinute - p.StartMinute
	}
	return total
}
