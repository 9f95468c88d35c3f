package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a category or activity across all history",
	}

	cmd.AddCommand(
		newRenameCategoryCmd(app),
		newRenameActivityCmd(app),
	)

	return cmd
}

func newRenameCategoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "category <old> <new>",
		Short: "Move a category's aggregates to a new name",
		Long: "Moves every day's aggregate entries and usage statistics from the old\n" +
			"category name to the new one, merging where the new name already has\n" +
			"time. Existing session records keep the name they were recorded under.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engine.MigrateCategoryData(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed category %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newRenameActivityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <category> <old> <new>",
		Short: "Move an activity's aggregates to a new name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engine.MigrateActivityData(context.Background(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Renamed activity %q/%q to %q\n", args[0], args[1], args[2])
			return nil
		},
	}
}
