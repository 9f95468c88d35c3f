package cli

import (
	"context"
	"fmt"

	"github.com/ahenriksen/tempus/internal/exporter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the entire store to a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := app.Engine.Export(context.Background())
			if err := exporter.WriteDocument(args[0], doc); err != nil {
				return err
			}
			fmt.Printf("Exported %d days to %s\n", len(doc.Days), args[0])
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the entire store from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := exporter.ReadDocument(args[0])
			if err != nil {
				return err
			}
			if err := app.Engine.Import(context.Background(), doc); err != nil {
				return err
			}
			fmt.Printf("Imported %d days from %s\n", len(doc.Days), args[0])
			return nil
		},
	}
}
