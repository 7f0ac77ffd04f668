package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx,
				`CREATE INDEX IF NOT EXISTS weekly_leaderboard_updated ON weekly_leaderboard (updated_at DESC)`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS weekly_leaderboard_updated`)
			return err
		},
	)
}
