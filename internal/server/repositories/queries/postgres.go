package queries

import (
	"context"
	"fmt"

	"github.com/fluxpad/fluxpad/internal/dbx"
	"github.com/fluxpad/fluxpad/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.QueryRecord) (*models.QueryRecord, error) {

	query :=
		`INSERT INTO queries (id, user_id, dataset_id, prompt, generated_sql, result_data)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.UserID, record.DatasetID,
		record.Prompt, record.GeneratedSQL, record.ResultData).Scan(&record.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.QueryRecord, error) {
	query :=
		`SELECT id, user_id, dataset_id, prompt, generated_sql, result_data, created_at
		 FROM queries
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.QueryRecord
	for rows.Next() {
		q := &models.QueryRecord{}
		if err := rows.Scan(&q.ID, &q.UserID, &q.DatasetID,
			&q.Prompt, &q.GeneratedSQL, &q.ResultData, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error (rows): %w", err)
	}

	return result, nil
}
