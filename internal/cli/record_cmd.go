package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ahenriksen/tempus/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *App) *cobra.Command {
	var category, activity, startFlag, endFlag string
	var duration, paused int64

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a completed tracking interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			end := time.Now()
			if endFlag != "" {
				t, err := parseTimeFlag(endFlag)
				if err != nil {
					return err
				}
				end = t
			}

			var start time.Time
			if startFlag != "" {
				t, err := parseTimeFlag(startFlag)
				if err != nil {
					return err
				}
				start = t
			} else if duration > 0 {
				start = end.Add(-time.Duration(duration) * time.Second)
			} else {
				return fmt.Errorf("either --start or --duration is required")
			}

			if duration == 0 {
				duration = int64(end.Sub(start).Round(time.Second) / time.Second)
			}

			sess, err := app.Engine.RecordSession(ctx, category, activity, duration, start, end, paused)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s for %s/%s (%s)\n",
				formatter.FormatSeconds(sess.Duration), sess.Category, sess.Activity, formatter.TruncID(sess.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category name")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity name")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Credited duration in seconds (defaults to the time span)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time (defaults to now)")
	cmd.Flags().Int64Var(&paused, "paused", 0, "Paused seconds excluded from active tracking")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("activity")

	return cmd
}
