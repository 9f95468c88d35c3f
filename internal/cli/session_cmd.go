package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ahenriksen/tempus/internal/cli/formatter"
	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/ahenriksen/tempus/internal/engine"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and edit recorded sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionEditCmd(app),
		newSessionDeleteCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var dayFlag, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions for a day or range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sessions []*domain.Session

			switch {
			case dayFlag != "":
				key := domain.DayKey(dayFlag)
				if !key.Valid() {
					return fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", dayFlag)
				}
				sessions = app.Engine.GetDateSessions(key)
			case fromFlag != "" && toFlag != "":
				from, err := domain.DayKey(fromFlag).Time()
				if err != nil {
					return fmt.Errorf("invalid --from day %q: %w", fromFlag, err)
				}
				to, err := domain.DayKey(toFlag).Time()
				if err != nil {
					return fmt.Errorf("invalid --to day %q: %w", toFlag, err)
				}
				sessions = app.Engine.GetSessionsInRange(from, to)
			default:
				sessions = app.Engine.GetDateSessions(domain.DayKeyFor(time.Now()))
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			headers := []string{"ID", "CATEGORY", "ACTIVITY", "STARTED", "DURATION"}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					s.Category,
					s.Activity,
					formatter.HumanTimestamp(s.Start()),
					formatter.FormatSeconds(s.Duration),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Day to list (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end day (YYYY-MM-DD)")

	return cmd
}

func newSessionEditCmd(app *App) *cobra.Command {
	var category, activity, startFlag, endFlag string
	var duration, paused int64

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a session; only the supplied flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			flags := cmd.Flags()
			updates := engine.SessionUpdate{
				Category:   changedString(flags, "category", &category),
				Activity:   changedString(flags, "activity", &activity),
				Duration:   changedInt64(flags, "duration", &duration),
				PausedTime: changedInt64(flags, "paused", &paused),
			}
			var err error
			if updates.StartTime, err = changedTime(flags, "start", startFlag); err != nil {
				return err
			}
			if updates.EndTime, err = changedTime(flags, "end", endFlag); err != nil {
				return err
			}

			sess, err := app.Engine.UpdateSession(ctx, args[0], updates)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %s: %s/%s, %s on %s\n",
				formatter.TruncID(sess.ID), sess.Category, sess.Activity,
				formatter.FormatSeconds(sess.Duration), string(sess.DayKey()))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "New category name")
	cmd.Flags().StringVar(&activity, "activity", "", "New activity name")
	cmd.Flags().StringVar(&startFlag, "start", "", "New start time")
	cmd.Flags().StringVar(&endFlag, "end", "", "New end time")
	cmd.Flags().Int64Var(&duration, "duration", 0, "New credited duration in seconds")
	cmd.Flags().Int64Var(&paused, "paused", 0, "New paused seconds")

	return cmd
}

func newSessionDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session and retract its time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engine.DeleteSession(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted session %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
	return cmd
}
