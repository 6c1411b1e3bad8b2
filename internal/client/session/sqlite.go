package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fluxpad/fluxpad/internal/client/migrations"
	"github.com/fluxpad/fluxpad/internal/dbx"
	"github.com/pressly/goose/v3"
)

const accessTokenKey = "access_token"

// SQLiteStore persists the session in a local SQLite key/value table.
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDatabase opens (creating if needed) the local session database and
// runs the embedded migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, accessTokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session token: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, accessTokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to set session token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
