// Command planner is the terminal trip planner. It reads the destination
// catalog from the same source as the API server (CATALOG_SOURCE and
// friends) and runs the planner in the alternate screen.
//
// Logs never go to the terminal, which the planner owns. Pass --log-file to
// keep them.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/pkordes/travelvista/internal/config"
	"github.com/pkordes/travelvista/internal/repo"
	"github.com/pkordes/travelvista/internal/service"
	"github.com/pkordes/travelvista/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var logFile string

	flagSet := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	flagSet.StringVar(&logFile, "log-file", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(logFile, cfg.SlogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	destinations, closeRepo, err := repo.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	catalog := service.NewCatalogService(destinations, logger, nil)
	go func() { _, _ = catalog.Load(ctx) }()

	program := tea.NewProgram(tui.NewModel(catalog, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// openLogger returns a JSON logger writing to path, or a discarding logger
// when path is empty.
func openLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `TravelVista planner: browse destinations and plan a trip in the terminal.

The catalog source is configured through the environment, exactly as for
the API server:

  CATALOG_SOURCE=supabase  SUPABASE_URL, SUPABASE_ANON_KEY
  CATALOG_SOURCE=postgres  DATABASE_URL
  CATALOG_SOURCE=file      CATALOG_FILE

Usage:
  planner [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
