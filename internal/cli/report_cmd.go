package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ahenriksen/tempus/internal/cli/formatter"
	"github.com/ahenriksen/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var dayFlag string
	var topPairs int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a day's totals per category and activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := domain.DayKeyFor(time.Now())
			if dayFlag != "" {
				key = domain.DayKey(dayFlag)
				if !key.Valid() {
					return fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", dayFlag)
				}
			}

			aggs := app.Engine.GetDateData(key)
			fmt.Println(formatter.Header("Totals for " + string(key)))
			if len(aggs) == 0 {
				fmt.Println(formatter.Dim("No time recorded."))
			} else {
				fmt.Print(formatter.RenderTable(
					[]string{"CATEGORY", "ACTIVITY", "TIME"},
					aggregateRows(aggs),
				))
			}

			fmt.Printf("\n%s %s\n", formatter.Bold("All-time total:"),
				formatter.FormatSeconds(app.Engine.GetAllTimeTotal()))

			if topPairs > 0 {
				stats, err := app.Engine.TopPairs(context.Background(), topPairs)
				if err != nil {
					return err
				}
				if len(stats) > 0 {
					fmt.Println()
					fmt.Println(formatter.Header("Most used"))
					rows := make([][]string, 0, len(stats))
					for _, s := range stats {
						rows = append(rows, []string{
							s.Category, s.Activity,
							fmt.Sprintf("%d", s.SessionCount),
							formatter.FormatSeconds(s.TotalSeconds),
						})
					}
					fmt.Print(formatter.RenderTable([]string{"CATEGORY", "ACTIVITY", "SESSIONS", "TIME"}, rows))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Day to report (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&topPairs, "top", 0, "Also show the N most used category/activity pairs")

	return cmd
}

// aggregateRows flattens an aggregate map into sorted table rows with a
// per-category subtotal.
func aggregateRows(aggs domain.Aggregates) [][]string {
	categories := make([]string, 0, len(aggs))
	for category := range aggs {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var rows [][]string
	for _, category := range categories {
		acts := aggs[category]
		activities := make([]string, 0, len(acts))
		for activity := range acts {
			activities = append(activities, activity)
		}
		sort.Strings(activities)

		for _, activity := range activities {
			rows = append(rows, []string{category, activity, formatter.FormatSeconds(acts[activity])})
		}
		if len(activities) > 1 {
			rows = append(rows, []string{
				formatter.Dim(category), formatter.Dim("total"),
				formatter.Dim(formatter.FormatSeconds(aggs.CategoryTotal(category))),
			})
		}
	}
	return rows
}
