package cli

import (
	"fmt"
	"time"

	"github.com/ahenriksen/tempus/internal/engine"
	"github.com/spf13/cobra"
)

// App holds the engine handle shared by all CLI commands.
type App struct {
	Engine *engine.Engine
}

// NewRootCmd creates the top-level "tempus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempus",
		Short: "Dated time-tracking store",
	}

	root.AddCommand(
		newRecordCmd(app),
		newSessionCmd(app),
		newRenameCmd(app),
		newReportCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}

// timeFlagLayouts are the accepted formats for --start/--end flags.
var timeFlagLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeFlagLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (expected e.g. \"2006-01-02 15:04\")", value)
}
