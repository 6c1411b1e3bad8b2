package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluxpad/fluxpad/internal/dbx"
	"github.com/fluxpad/fluxpad/internal/server/models"
	"github.com/fluxpad/fluxpad/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// historyLimit caps how many query records a single history request returns.
const historyLimit = 50

// QueryService keeps the per-user history of natural-language queries.
type QueryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQueryService(db *sql.DB, m repomanager.RepositoryManager) *QueryService {
	return &QueryService{db: db, repomanager: m}
}

// Record stores one history entry. The dataset ownership check and the
// insert run in a single transaction so a concurrently deleted dataset
// cannot leave an orphaned record.
func (s *QueryService) Record(ctx context.Context, record *models.QueryRecord) (*models.QueryRecord, error) {
	record.ID = uuid.NewString()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Datasets(tx).GetByID(ctx, record.UserID, record.DatasetID); err != nil {
			return err
		}
		created, err := s.repomanager.Queries(tx).Create(ctx, record)
		if err != nil {
			return fmt.Errorf("error recording query: %w", err)
		}
		record = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *QueryService) History(ctx context.Context, userID string) ([]*models.QueryRecord, error) {
	repo := s.repomanager.Queries(s.db)
	return repo.ListByUser(ctx, userID, historyLimit)
}
