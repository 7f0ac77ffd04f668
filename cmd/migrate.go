package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/brainarcade/internal/config"
	"github.com/abhisek/brainarcade/internal/store/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the Postgres leaderboard migrations",
	Long:      "SQLite creates its tables on open; this command is only needed with the postgres store driver.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}
		switch direction {
		case "up":
			return runMigrations(cmd.Context(), cfg)
		case "down":
			return rollbackMigrations(cmd.Context(), cfg)
		}
		return fmt.Errorf("unknown direction %q: want up or down", direction)
	},
}

var errNoPostgres = errors.New("postgres url not configured (store.postgres_url or ARCADE_POSTGRES_URL)")

func runMigrations(ctx context.Context, cfg config.Config) error {
	if cfg.Store.PostgresURL == "" {
		return errNoPostgres
	}
	m := postgres.NewMigrator(cfg.Store.PostgresURL)
	defer m.Close()

	group, err := m.Up(ctx)
	if err != nil {
		return err
	}
	if group == "" {
		fmt.Println("No new migrations.")
		return nil
	}
	fmt.Printf("Migrated to %s\n", group)
	return nil
}

func rollbackMigrations(ctx context.Context, cfg config.Config) error {
	if cfg.Store.PostgresURL == "" {
		return errNoPostgres
	}
	m := postgres.NewMigrator(cfg.Store.PostgresURL)
	defer m.Close()

	group, err := m.Down(ctx)
	if err != nil {
		return err
	}
	if group == "" {
		fmt.Println("Nothing to roll back.")
		return nil
	}
	fmt.Printf("Rolled back %s\n", group)
	return nil
}
