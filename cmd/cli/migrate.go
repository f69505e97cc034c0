package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/gojournal/internal/infrastructure/config"
	"github.com/iho/gojournal/internal/infrastructure/logger"
	"github.com/iho/gojournal/internal/infrastructure/postgres"
)

// migrateCmd talks to the database directly, using the server's
// configuration (environment and .env).
func migrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (default MIGRATIONS_PATH)")

	run := func(fn func(databaseURL, migrationsPath string) error) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if path == "" {
			path = cfg.MigrationsPath
		}
		return fn(cfg.DatabaseURL, path)
	}

	log := logger.New(logger.Config{Level: "info", Format: "console", Service: "gojournal-cli", Output: os.Stderr})

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(url, p string) error { return postgres.RunMigrations(url, p, log) })
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(url, p string) error { return postgres.RunMigrationsDown(url, p, log) })
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(url, p string) error {
				st, err := postgres.GetMigrationStatus(url, p, log)
				if err != nil {
					return err
				}
				if !st.Applied {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %v)\n", st.Version, st.Dirty)
				return nil
			})
		},
	}

	cmd.AddCommand(upCmd, downCmd, statusCmd)
	return cmd
}
