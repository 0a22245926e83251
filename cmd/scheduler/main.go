// main is the entry point of the Student Course Scheduler.
//
// STARTUP SEQUENCE:
//  1. Parse the command line (cobra root command)
//  2. Load configuration (cleanenv: optional YAML file, env vars, defaults)
//  3. Initialise the logger
//  4. Open (and set up) the SQLite database
//  5. Run the interactive shell until the user exits
//
// RUNNING IT:
//
//	go run ./cmd/scheduler
//
// With no flags and no environment this uses ./scheduler.db, creating it
// on first run. The schema setup is idempotent, so existing data is kept.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/config"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/shell"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/storage/sqlite"
)

// Populated via -ldflags at release time.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "scheduler",
		Short:         "Manage students, courses, and enrollments in a local SQLite file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad(configPath)
			log := setupLogger(cfg.Env)

			log.Info("starting scheduler",
				slog.String("env", cfg.Env),
				slog.String("version", version),
			)

			// storage init failure is fatal: without a schema every
			// subsequent operation would fail at point of use anyway.
			store, err := sqlite.New(cfg)
			if err != nil {
				log.Error("failed to initialise storage",
					slog.String("error", err.Error()))
				return err
			}
			defer store.Close()

			log.Info("storage initialised", slog.String("path", cfg.StoragePath))

			return shell.New(in, out, store, log).Run()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the configuration YAML file (defaults to $CONFIG_PATH, then built-in defaults)")

	cmd.AddCommand(newVersionCommand(out))
	return cmd
}

func newVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n",
				version, commit, buildTime)
			return err
		},
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
//
// Logs go to stderr — stdout belongs to the interactive menu.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
