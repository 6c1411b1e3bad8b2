package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluxpad/fluxpad/internal/server/models"
	"github.com/fluxpad/fluxpad/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DatasetService records and lists dataset metadata. The upload pipeline and
// any parsing of the underlying files live outside this service.
type DatasetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDatasetService(db *sql.DB, m repomanager.RepositoryManager) *DatasetService {
	return &DatasetService{db: db, repomanager: m}
}

func (s *DatasetService) Create(ctx context.Context, dataset *models.Dataset) (*models.Dataset, error) {
	dataset.ID = uuid.NewString()

	repo := s.repomanager.Datasets(s.db)
	dataset, err := repo.Create(ctx, dataset)
	if err != nil {
		return nil, fmt.Errorf("error creating dataset: %w", err)
	}

	return dataset, nil
}

func (s *DatasetService) ListByUser(ctx context.Context, userID string) ([]*models.Dataset, error) {
	repo := s.repomanager.Datasets(s.db)
	return repo.ListByUser(ctx, userID)
}

func (s *DatasetService) GetByID(ctx context.Context, userID, id string) (*models.Dataset, error) {
	repo := s.repomanager.Datasets(s.db)
	return repo.GetByID(ctx, userID, id)
}
