package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/brainarcade/internal/store/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Migrator applies the schema migrations with bun.
type Migrator struct {
	db       *bun.DB
	migrator *migrate.Migrator
}

func NewMigrator(url string) *Migrator {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &Migrator{db: db, migrator: migrate.NewMigrator(db, migrations.Migrations)}
}

func (m *Migrator) Close() error { return m.db.Close() }

// Up applies every pending migration and returns the applied group's name.
func (m *Migrator) Up(ctx context.Context) (string, error) {
	if err := m.migrator.Init(ctx); err != nil {
		return "", fmt.Errorf("init migrations: %w", err)
	}
	group, err := m.migrator.Migrate(ctx)
	if err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}
	if group.IsZero() {
		return "", nil
	}
	return group.String(), nil
}

// Down rolls back the last applied group.
func (m *Migrator) Down(ctx context.Context) (string, error) {
	if err := m.migrator.Init(ctx); err != nil {
		return "", fmt.Errorf("init migrations: %w", err)
	}
	group, err := m.migrator.Rollback(ctx)
	if err != nil {
		return "", fmt.Errorf("rollback: %w", err)
	}
	if group.IsZero() {
		return "", nil
	}
	return group.String(), nil
}
