package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/huh"
)

// taskFormValues holds the raw strings a huh form edits.
type taskFormValues struct {
	desc     string
	minutes  string
	priority string
	quality  string
	window   string
	at       string
}

// apply copies validated form input into flags. Validation already ran in
// the form, so conversion errors cannot happen here.
func (v taskFormValues) apply(f *taskFlags) error {
	f.desc = v.desc
	f.minutes, _ = strconv.Atoi(v.minutes)
	if v.priority != "" {
		f.priority, _ = strconv.Atoi(v.priority)
		f.prioritySet = true
	}
	f.quality = v.quality
	f.window = v.window
	if v.at != "" {
		return f.at.Set(v.at)
	}
	return nil
}

// windowOptions lists "anytime" plus every stored time block.
func windowOptions(ctx context.Context, app *App) ([]huh.Option[string], error) {
	blocks, err := app.Blocks.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := []huh.Option[string]{huh.NewOption("Anytime", "")}
	for _, b := range blocks {
		opts = append(opts, huh.NewOption(b.Name+"  "+b.Start+"-"+b.End, b.Name))
	}
	return opts, nil
}

func taskForm(v *taskFormValues, windows []huh.Option[string]) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&v.desc).Validate(validateRequired),
			huh.NewInput().Title("Estimated minutes").Placeholder("30").Value(&v.minutes).Validate(validatePositiveInt),
			huh.NewInput().Title("Priority (blank for none)").Placeholder("1").Value(&v.priority).Validate(validateOptionalNonNegativeInt),
			huh.NewSelect[string]().Title("Quality").Options(
				huh.NewOption("None", ""),
				huh.NewOption("A", "A"),
				huh.NewOption("B", "B"),
				huh.NewOption("C", "C"),
				huh.NewOption("D", "D"),
			).Value(&v.quality),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Window").Options(windows...).Value(&v.window),
			huh.NewInput().Title("Exact time (HH:MM, blank for none)").
				Description("An exact time wins over the window.").
				Value(&v.at).
				Validate(validateOptionalClock),
		),
	).WithTheme(daylineHuhTheme())
}

// runTaskForm asks for the task interactively and stores the answers in f.
func runTaskForm(ctx context.Context, app *App, f *taskFlags) error {
	windows, err := windowOptions(ctx, app)
	if err != nil {
		return err
	}
	var v taskFormValues
	if err := taskForm(&v, windows).RunWithContext(ctx); err != nil {
		return err
	}
	if v.at != "" {
		v.window = ""
	}
	return v.apply(f)
}
