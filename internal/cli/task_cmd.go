package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayline/internal/cli/formatter"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/service"
)

// resolveTaskID matches input against the ids of day's tasks, completed
// ones included, by full id or unambiguous prefix.
func resolveTaskID(ctx context.Context, app *App, day, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}
	tasks, err := app.Tasks.ListByDay(ctx, day, true)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, strings.ToLower(input)) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found on %s: %q", day, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage a day's tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var flags taskFlags
	var force bool
	day := newDateValue(app.now)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task, checking that it fits the day first",
		Long: `Add a task to a day. Before saving, the whole day is rescheduled with the
new task; if it would not be placed the problems are shown and, on a
terminal, you are asked whether to save it anyway. --force skips the check.

Without --desc on a terminal an interactive form is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if flags.desc == "" {
				if !app.interactive() {
					return fmt.Errorf("--desc is required")
				}
				if err := runTaskForm(ctx, app, &flags); err != nil {
					return err
				}
			}

			t, err := flags.build(cmd, app, day.Day())
			if err != nil {
				return err
			}

			now := app.now()
			resp, err := app.Tasks.CreateChecked(ctx, t, &now, force)
			if errors.Is(err, service.ErrNotPlaceable) {
				fmt.Fprint(out, formatter.FormatCanPlace(resp))
				if !app.interactive() {
					return fmt.Errorf("task not saved; use --force to add it anyway")
				}
				var keep bool
				if ferr := confirmForm("Save it anyway?", "It will be listed as unscheduled.", &keep).Run(); ferr != nil {
					return ferr
				}
				if !keep {
					fmt.Fprintln(out, "Task not saved.")
					return nil
				}
				resp, err = app.Tasks.CreateChecked(ctx, t, &now, true)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Added task %s [%s]\n", t.Description, domain.ShortID(t.ID))
			switch {
			case resp == nil:
			case resp.Placeable:
				fmt.Fprint(out, formatter.FormatCanPlace(resp))
			default:
				fmt.Fprintln(out, formatter.Dim("Saved as unscheduled."))
			}
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&force, "force", false, "Save even if the task cannot be placed")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool
	day := newDateValue(app.now)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's tasks in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.Tasks.ListByDay(ctx, day.Day(), all)
			if err != nil {
				return err
			}
			projects, err := app.Projects.List(ctx, true)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(projects))
			for _, p := range projects {
				names[p.ID] = p.Name
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, names))
			return nil
		},
	}
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var undo bool
	day := newDateValue(app.now)

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed; completed tasks leave the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, day.Day(), args[0])
			if err != nil {
				return err
			}
			if undo {
				if err := app.Tasks.Reopen(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened task %s\n", domain.ShortID(id))
				return nil
			}
			if err := app.Tasks.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", domain.ShortID(id))
			return nil
		},
	}
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen a completed task")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	day := newDateValue(app.now)

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTaskID(ctx, app, day.Day(), args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", domain.ShortID(id))
			return nil
		},
	}
	cmd.Flags().Var(day, "day", "Day (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
