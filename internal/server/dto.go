package server

import (
	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/timeline"
)

type errorResponse struct {
	Error string `json:"error"`
}

type entryJSON struct {
	Kind        string `json:"kind"`
	TaskID      string `json:"task_id,omitempty"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Minutes     int    `json:"minutes"`
	Window      string `json:"window,omitempty"`
}

type issueJSON struct {
	TaskID  string `json:"task_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type scheduleJSON struct {
	Day             string      `json:"day"`
	Cutoff          *string     `json:"cutoff"`
	BlockMinutes    int         `json:"block_minutes"`
	OccupiedMinutes int         `json:"occupied_minutes"`
	Entries         []entryJSON `json:"entries"`
	Unscheduled     []string    `json:"unscheduled"`
	Errors          []string    `json:"errors"`
	Issues          []issueJSON `json:"issues"`
}

type placementJSON struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

type canPlaceJSON struct {
	Placeable bool           `json:"placeable"`
	Placement *placementJSON `json:"placement,omitempty"`
	Issues    []issueJSON    `json:"issues"`
}

// candidateJSON is the request body of can-place.
type candidateJSON struct {
	Description  string `json:"description"`
	EstimatedMin int    `json:"estimated_min"`
	Priority     *int   `json:"priority,omitempty"`
	Quality      string `json:"quality,omitempty"`
	ExactTime    string `json:"exact_time,omitempty"`
	WindowName   string `json:"window_name,omitempty"`
	WindowStart  string `json:"window_start,omitempty"`
	WindowEnd    string `json:"window_end,omitempty"`
}

func (c candidateJSON) toDomain(day string) *domain.Task {
	q, _ := domain.ParseQuality(c.Quality)
	return &domain.Task{
		Day:          day,
		Description:  c.Description,
		EstimatedMin: c.EstimatedMin,
		Priority:     c.Priority,
		Quality:      q,
		ExactTime:    c.ExactTime,
		WindowName:   c.WindowName,
		WindowStart:  c.WindowStart,
		WindowEnd:    c.WindowEnd,
	}
}

func issuesJSON(issues []scheduler.Issue) []issueJSON {
	out := make([]issueJSON, 0, len(issues))
	for _, is := range issues {
		out = append(out, issueJSON{TaskID: is.TaskID, Kind: string(is.Kind), Message: is.Message})
	}
	return out
}

func windowLabel(w *scheduler.Window) string {
	if w == nil {
		return ""
	}
	return w.Label
}

func toScheduleJSON(resp *app.DayScheduleResponse) scheduleJSON {
	res := resp.Result
	out := scheduleJSON{
		Day:             resp.Day,
		BlockMinutes:    res.Grid.BlockMinutes(),
		OccupiedMinutes: res.OccupiedMinutes(),
		Entries:         make([]entryJSON, 0, len(res.Schedule)),
		Unscheduled:     make([]string, 0, len(res.Unscheduled)),
		Errors:          res.Errors(),
		Issues:          issuesJSON(res.Issues),
	}
	if resp.Cutoff != nil {
		c := timeline.FormatClock(*resp.Cutoff)
		out.Cutoff = &c
	}
	for _, e := range res.Schedule {
		switch e.Kind {
		case scheduler.EntryTask:
			p := e.Task
			out.Entries = append(out.Entries, entryJSON{
				Kind:        string(e.Kind),
				TaskID:      p.ID,
				Description: p.Description,
				Start:       timeline.FormatClock(p.StartMinute),
				End:         timeline.FormatClock(p.EndMinute),
				Minutes:     p.EndMinute - p.StartMinute,
				Window:      windowLabel(p.Window),
			})
		case scheduler.EntryGap:
			g := e.Gap
			out.Entries = append(out.Entries, entryJSON{
				Kind:    string(e.Kind),
				Start:   timeline.FormatClock(g.StartMinute),
				End:     timeline.FormatClock(g.EndMinute),
				Minutes: g.Minutes,
			})
		case scheduler.EntryUnscheduled:
			t := e.Unscheduled
			out.Entries = append(out.Entries, entryJSON{
				Kind:        string(e.Kind),
				TaskID:      t.ID,
				Description: t.Description,
				Minutes:     t.DurationMin,
				Window:      windowLabel(t.Window),
			})
		}
	}
	for _, t := range res.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, t.ID)
	}
	return out
}

func toCanPlaceJSON(resp *app.CanPlaceResponse) canPlaceJSON {
	out := canPlaceJSON{Placeable: resp.Placeable, Issues: issuesJSON(resp.Issues)}
	if p := resp.Placement; p != nil {
		out.Placement = &placementJSON{
			Start:   timeline.FormatClock(p.StartMinute),
			End:     timeline.FormatClock(p.EndMinute),
			Minutes: p.EndMinute - p.StartMinute,
		}
	}
	return out
}
