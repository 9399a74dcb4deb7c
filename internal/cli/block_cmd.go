package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayline/internal/cli/formatter"
	"github.com/alexanderramin/dayline/internal/domain"
)

func newBlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage named time windows such as morning or evening",
	}
	cmd.AddCommand(
		newBlockAddCmd(app),
		newBlockListCmd(app),
		newBlockRemoveCmd(app),
	)
	return cmd
}

func newBlockAddCmd(app *App) *cobra.Command {
	var from, to clockValue

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a named time window",
		Long:  "Create a named time window. A window whose end is at or before its start runs past midnight.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &domain.TimeBlock{Name: args[0], Start: from.String(), End: to.String()}
			if err := app.Blocks.Create(cmd.Context(), b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created time block %s (%s-%s)\n", b.Name, b.Start, b.End)
			return nil
		},
	}
	cmd.Flags().Var(&from, "from", "Window start (HH:MM)")
	cmd.Flags().Var(&to, "to", "Window end (HH:MM)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newBlockListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List time windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := app.Blocks.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeBlockList(blocks))
			return nil
		},
	}
}

func newBlockRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a time window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Blocks.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted time block %s\n", args[0])
			return nil
		},
	}
}
