package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ahenriksen/tempus/internal/cli"
	"github.com/ahenriksen/tempus/internal/config"
	"github.com/ahenriksen/tempus/internal/db"
	"github.com/ahenriksen/tempus/internal/engine"
	"github.com/ahenriksen/tempus/internal/repository"
	"github.com/ahenriksen/tempus/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Suppress styling when output is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	dayStore := store.New(database, nil)
	if err := dayStore.Load(context.Background(), cfg.SessionRetentionDays); err != nil {
		return err
	}

	var observer engine.Observer = engine.NoopObserver{}
	if os.Getenv("TEMPUS_LOG") != "" {
		observer = engine.NewLogObserver(logWriter())
	}

	eng := engine.New(
		dayStore,
		repository.NewSQLiteUsageStatRepo(database),
		db.NewSQLiteUnitOfWork(database),
		observer,
	)

	rootCmd := cli.NewRootCmd(&cli.App{Engine: eng})
	return rootCmd.Execute()
}

func logWriter() io.Writer {
	return os.Stderr
}
