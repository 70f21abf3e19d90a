package main

import (
	"fmt"
	"io"

	"entity-tracker-backend/internal/config"
	"entity-tracker-backend/internal/database"
	"entity-tracker-backend/internal/database/migrate"
	"entity-tracker-backend/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootOptions holds flags shared by every subcommand
type rootOptions struct {
	DatabaseURL string
	LogLevel    string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect and upgrade the entity tracker schema",
		Long: `Brings an existing database forward to the current models.

Changes are additive only: missing tables are created and missing columns
are added. Existing rows are never touched.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(opts.LogLevel, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "database URL (defaults to DATABASE_URL from config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(newUpCommand(opts))
	cmd.AddCommand(newPlanCommand(opts))

	return cmd
}

func newUpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending schema changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *gorm.DB) error {
				report, err := migrate.New(db).Run()
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
}

func newPlanCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "List pending schema changes without applying them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *gorm.DB) error {
				plan, err := migrate.New(db).Plan()
				if err != nil {
					return err
				}
				printPlan(cmd.OutOrStdout(), plan)
				return nil
			})
		},
	}
}

func withDatabase(opts *rootOptions, fn func(db *gorm.DB) error) error {
	dsn := opts.DatabaseURL
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		dsn = cfg.DatabaseURL
	}

	db, _, err := database.Open(dsn, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	return fn(db)
}

func printPlan(w io.Writer, plan *migrate.Plan) {
	if plan.Empty() {
		fmt.Fprintln(w, "Schema is up to date")
		return
	}
	for _, table := range plan.Missing {
		fmt.Fprintf(w, "create table %s\n", table)
	}
	for _, step := range plan.Steps {
		fmt.Fprintf(w, "add column %s.%s (step %d)\n", step.Table, step.Column, step.Version)
	}
	for _, column := range plan.Columns {
		fmt.Fprintf(w, "add column %s (from model)\n", column)
	}
}

func printReport(w io.Writer, report *migrate.Report) {
	if !report.Changed() {
		fmt.Fprintln(w, "Schema is up to date")
		return
	}
	for _, table := range report.Created {
		fmt.Fprintf(w, "created table %s\n", table)
	}
	for _, step := range report.Applied {
		fmt.Fprintf(w, "added column %s.%s (step %d)\n", step.Table, step.Column, step.Version)
	}
	for _, column := range report.Repaired {
		fmt.Fprintf(w, "added column %s (from model)\n", column)
	}
}
