package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/cli/formatter"
	"github.com/alexanderramin/dayline/internal/timeline"
)

func newDayCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show and plan a day's timeline",
	}
	cmd.AddCommand(
		newDayShowCmd(a),
		newDayCheckCmd(a),
		newDayFillCmd(a),
		newDayWatchCmd(a),
	)
	return cmd
}

// cutoffFlags select the "now" a day is planned from.
type cutoffFlags struct {
	now      clockValue
	noCutoff bool
}

func (f *cutoffFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Var(&f.now, "now", "Plan from this time instead of the clock (HH:MM)")
	cmd.Flags().BoolVar(&f.noCutoff, "no-cutoff", false, "Plan the whole day even if it is today")
	cmd.MarkFlagsMutuallyExclusive("now", "no-cutoff")
}

// resolve returns the instant passed to the services. --now pins the cutoff
// on day itself; otherwise the app clock is used and only cuts today.
func (f *cutoffFlags) resolve(a *App, day string) (*time.Time, error) {
	if f.noCutoff {
		return nil, nil
	}
	now := a.now()
	if f.now.IsSet() {
		if f.now.Minutes() >= timeline.MinutesPerDay {
			return nil, fmt.Errorf("--now must be before 24:00")
		}
		at, err := atClock(day, f.now.Minutes(), now.Location())
		if err != nil {
			return nil, err
		}
		return &at, nil
	}
	return &now, nil
}

func newDayShowCmd(a *App) *cobra.Command {
	var cut cutoffFlags
	day := newDateValue(a.now)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the day's timeline with gaps and unscheduled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := cut.resolve(a, day.Day())
			if err != nil {
				return err
			}
			resp, err := a.Schedule.DaySchedule(cmd.Context(), app.DayScheduleRequest{Day: day.Day(), Now: now})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(resp, a.now()))
			return nil
		},
	}
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	cut.bind(cmd)
	return cmd
}

func newDayCheckCmd(a *App) *cobra.Command {
	var flags taskFlags
	var cut cutoffFlags
	day := newDateValue(a.now)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Dry-run whether a task would fit, without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.desc == "" {
				flags.desc = "candidate"
			}
			t, err := flags.build(cmd, a, day.Day())
			if err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return err
			}
			now, err := cut.resolve(a, day.Day())
			if err != nil {
				return err
			}
			resp, err := a.Schedule.CanPlace(cmd.Context(), app.CanPlaceRequest{Day: day.Day(), Candidate: t, Now: now})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCanPlace(resp))
			return nil
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("min")
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	cut.bind(cmd)
	return cmd
}

func newDayFillCmd(a *App) *cobra.Command {
	var file string
	var cut cutoffFlags
	day := newDateValue(a.now)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Add every task from a YAML file that still fits the day",
		Long: `Offer tasks from a YAML file to the day in file order. A task is kept only
if it can be placed without pushing out anything placed before it. Kept
tasks are saved together; nothing is saved if any write fails.

  tasks:
    - desc: Read
      min: 30
      priority: 2
      quality: A
      window: evening
    - desc: Call the bank
      min: 15
      at: "09:30"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := loadFillFile(file, day.Day())
			if err != nil {
				return err
			}
			now, err := cut.resolve(a, day.Day())
			if err != nil {
				return err
			}
			resp, err := a.Planner.AutoFill(cmd.Context(), app.AutoFillRequest{Day: day.Day(), Candidates: candidates, Now: now})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAutoFill(resp))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with a tasks list")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	cut.bind(cmd)
	return cmd
}
