package repomanager

import (
	"context"
	"database/sql"

	"github.com/fluxpad/fluxpad/internal/dbx"
	"github.com/fluxpad/fluxpad/internal/server/repositories/datasets"
	"github.com/fluxpad/fluxpad/internal/server/repositories/queries"
	"github.com/fluxpad/fluxpad/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Datasets(db dbx.DBTX) datasets.Repository
	Queries(db dbx.DBTX) queries.Repository
}
