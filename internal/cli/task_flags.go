package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayline/internal/domain"
)

// taskFlags are the task attributes shared by "task add" and "day check".
type taskFlags struct {
	desc     string
	minutes  int
	priority int
	quality  string
	at       clockValue
	window   string
	from, to clockValue
	project  string

	// prioritySet marks a priority entered through the form.
	prioritySet bool
}

func (f *taskFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.desc, "desc", "", "Task description")
	cmd.Flags().IntVar(&f.minutes, "min", 0, "Estimated minutes")
	cmd.Flags().IntVar(&f.priority, "priority", 0, "Priority, lower runs first (default: unset)")
	cmd.Flags().StringVar(&f.quality, "quality", "", "Quality A-D, breaks priority ties (A first)")
	cmd.Flags().Var(&f.at, "at", "Exact start time (HH:MM)")
	cmd.Flags().StringVar(&f.window, "window", "", "Named time window, see 'dayline block list'")
	cmd.Flags().Var(&f.from, "from", "Window start (HH:MM)")
	cmd.Flags().Var(&f.to, "to", "Window end (HH:MM)")
	cmd.Flags().StringVar(&f.project, "project", "", "Project ID or prefix")
	cmd.MarkFlagsMutuallyExclusive("at", "window")
	cmd.MarkFlagsMutuallyExclusive("at", "from")
	cmd.MarkFlagsRequiredTogether("from", "to")
}

// build turns the flags into a task for day. priority is only set when the
// flag was given explicitly.
func (f *taskFlags) build(cmd *cobra.Command, app *App, day string) (*domain.Task, error) {
	q, ok := domain.ParseQuality(f.quality)
	if !ok {
		return nil, fmt.Errorf("quality %q must be one of A, B, C, D", f.quality)
	}
	t := &domain.Task{
		Day:          day,
		Description:  strings.TrimSpace(f.desc),
		EstimatedMin: f.minutes,
		Quality:      q,
		ExactTime:    f.at.String(),
		WindowName:   f.window,
		WindowStart:  f.from.String(),
		WindowEnd:    f.to.String(),
	}
	if cmd.Flags().Changed("priority") || f.prioritySet {
		p := f.priority
		t.Priority = &p
	}
	if f.project != "" {
		id, err := resolveProjectID(cmd.Context(), app, f.project)
		if err != nil {
			return nil, err
		}
		t.ProjectID = &id
	}
	return t, nil
}
