package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgconn"
)

// Execer is satisfied by *pgxpool.Pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order; each statement is idempotent.
var Migrations = []Migration{
	{
		Name: "create_resume_snapshots",
		SQL: `
		CREATE TABLE IF NOT EXISTS resume_snapshots (
			key        TEXT PRIMARY KEY,
			id         UUID NOT NULL,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`,
	},
	{
		Name: "index_resume_snapshots_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS resume_snapshots_updated_at_idx ON resume_snapshots (updated_at DESC);`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, db Execer) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := db.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
