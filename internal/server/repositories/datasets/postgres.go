package datasets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fluxpad/fluxpad/internal/common"
	"github.com/fluxpad/fluxpad/internal/dbx"
	"github.com/fluxpad/fluxpad/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, dataset *models.Dataset) (*models.Dataset, error) {

	query :=
		`INSERT INTO datasets (id, user_id, name, description, file_name, file_size, columns_info, row_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		dataset.ID, dataset.UserID, dataset.Name, dataset.Description,
		dataset.FileName, dataset.FileSize, dataset.ColumnsInfo, dataset.RowCount).Scan(&dataset.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dataset, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Dataset, error) {
	query :=
		`SELECT id, user_id, name, description, file_name, file_size, columns_info, row_count, created_at
		 FROM datasets
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Dataset
	for rows.Next() {
		d := &models.Dataset{}
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Description,
			&d.FileName, &d.FileSize, &d.ColumnsInfo, &d.RowCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error (rows): %w", err)
	}

	return result, nil
}

// GetByID resolves a dataset scoped to its owner; a dataset belonging to
// another user is indistinguishable from a missing one.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Dataset, error) {
	query :=
		`SELECT id, user_id, name, description, file_name, file_size, columns_info, row_count, created_at
		 FROM datasets
		 WHERE id = $1 AND user_id = $2
		 `

	d := &models.Dataset{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Description,
		&d.FileName, &d.FileSize, &d.ColumnsInfo, &d.RowCount, &d.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}
