package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationLedgerDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// RunMigrations brings the database schema up to date. Each pending
// migration file is executed and recorded in the ledger inside a single
// transaction, so a failed migration never leaves the ledger out of step
// with the schema. Migrations only roll forward.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, migrationLedgerDDL); err != nil {
		return fmt.Errorf("preparing migration ledger: %w", err)
	}

	pending, err := pendingMigrations(ctx, pool)
	if err != nil {
		return err
	}

	for _, name := range pending {
		if err := applyMigration(ctx, pool, name); err != nil {
			return err
		}
	}
	return nil
}

// pendingMigrations returns the embedded migration files not yet recorded
// in the ledger. Glob yields lexical order, which is version order.
func pendingMigrations(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing embedded migrations: %w", err)
	}

	var pending []string
	for _, name := range names {
		var applied bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)",
			path.Base(name),
		).Scan(&applied)
		if err != nil {
			return nil, fmt.Errorf("consulting migration ledger for %s: %w", name, err)
		}
		if !applied {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

// applyMigration executes one migration file and records it in the ledger,
// both inside the same transaction.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, name string) error {
	body, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", name, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("opening transaction for %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(body)); err != nil {
		return fmt.Errorf("executing migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version) VALUES ($1)", path.Base(name),
	); err != nil {
		return fmt.Errorf("recording migration %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing migration %s: %w", name, err)
	}
	return nil
}
