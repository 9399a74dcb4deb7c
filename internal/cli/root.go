// Package cli implements the dayline command tree.
package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayline/internal/server"
	"github.com/alexanderramin/dayline/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Blocks   service.TimeBlockService
	Tasks    service.TaskService
	Schedule service.ScheduleService
	Planner  service.PlannerService

	// Serving the HTTP API.
	Addr    string
	Metrics *server.Metrics
	Logger  zerolog.Logger

	// Now is the clock used for "today" and the cutoff. Defaults to
	// time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Forms and
	// confirmations are skipped when it returns false or is nil.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "dayline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dayline",
		Short:         "Plan a day on a timeline of fixed-size blocks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newBlockCmd(app),
		newTaskCmd(app),
		newDayCmd(app),
		newServeCmd(app),
	)

	return root
}
