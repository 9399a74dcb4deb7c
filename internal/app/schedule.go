package app

import (
	"time"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/scheduler"
)

type DayScheduleRequest struct {
	Day string // YYYY-MM-DD
	// Now enables the cutoff when it falls on Day. Nil schedules the whole
	// day.
	Now *time.Time
}

type DayScheduleResponse struct {
	Day    string
	Cutoff *int // minutes since midnight; nil when no cutoff applied
	Result *scheduler.Result
	// Tasks indexes the stored tasks by id so callers can show project and
	// window details next to scheduler entries.
	Tasks map[string]*domain.Task
}

type CanPlaceRequest struct {
	Day       string
	Candidate *domain.Task
	Now       *time.Time
}

type CanPlaceResponse struct {
	Placeable bool
	Placement *scheduler.PlacedTask
	Issues    []scheduler.Issue
}

// Messages returns the issue messages for display.
func (r *CanPlaceResponse) Messages() []string {
	msgs := make([]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		msgs = append(msgs, is.Message)
	}
	return msgs
}

type AutoFillRequest struct {
	Day        string
	Candidates []*domain.Task
	Now        *time.Time
}

type RejectedTask struct {
	Task    *domain.Task
	Reasons []string
}

type AutoFillResponse struct {
	Accepted []*domain.Task
	Rejected []RejectedTask
}
