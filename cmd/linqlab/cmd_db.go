package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcama/linqlab/config"
	"github.com/bcama/linqlab/database/seeders"
	"github.com/bcama/linqlab/pkg/database"
	"github.com/bcama/linqlab/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

func withDB(run func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		return run(cmd)
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		RunE: withDB(func(cmd *cobra.Command) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations...")
			return migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Run()
		}),
	}
}

func newMigrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last batch of migrations",
		RunE: withDB(func(cmd *cobra.Command) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch...")
			return migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Rollback()
		}),
	}
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: withDB(func(cmd *cobra.Command) error {
			return migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Status()
		}),
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample data set",
		RunE: withDB(func(cmd *cobra.Command) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders...")
			return seeders.RunAll(cmd.Context(), database.DB, cmd.OutOrStdout())
		}),
	}
}
