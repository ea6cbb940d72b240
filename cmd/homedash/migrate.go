package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/lib/pq" // postgres driver
	"github.com/spf13/cobra"

	"github.com/txn2/homedash/pkg/database/migrate"
)

var errNoDSN = errors.New("database.dsn is required for migrations")

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the homedash database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(_ *cobra.Command, db *sql.DB, _ []string) error {
				return migrate.Run(db)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations (drops all homedash tables)",
			Args:  cobra.NoArgs,
			RunE: withDB(func(_ *cobra.Command, db *sql.DB, _ []string) error {
				return migrate.Down(db)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withDB(func(cmd *cobra.Command, db *sql.DB, _ []string) error {
				version, dirty, err := migrate.Version(db)
				if err != nil {
					return fmt.Errorf("reading schema version: %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return err
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations; negative N rolls back",
			Args:  cobra.ExactArgs(1),
			RunE: withDB(func(_ *cobra.Command, db *sql.DB, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("parsing steps %q: %w", args[0], err)
				}
				return migrate.Steps(db, n)
			}),
		},
	)
	return cmd
}

// withDB opens the configured database around fn.
func withDB(fn func(cmd *cobra.Command, db *sql.DB, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Database.DSN == "" {
			return errNoDSN
		}

		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() { _ = db.Close() }()

		if err := db.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("pinging database: %w", err)
		}
		return fn(cmd, db, args)
	}
}
