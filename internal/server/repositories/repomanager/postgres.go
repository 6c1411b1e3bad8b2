// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/fluxpad/fluxpad/internal/dbx"
	"github.com/fluxpad/fluxpad/internal/server/migrations"
	"github.com/fluxpad/fluxpad/internal/server/repositories/datasets"
	"github.com/fluxpad/fluxpad/internal/server/repositories/queries"
	"github.com/fluxpad/fluxpad/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Datasets returns a datasets.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Datasets(db dbx.DBTX) datasets.Repository {
	return datasets.NewPostgresRepository(db)
}

// Queries returns a queries.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Queries(db dbx.DBTX) queries.Repository {
	return queries.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
