package datasets

import (
	"context"

	"github.com/fluxpad/fluxpad/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, dataset *models.Dataset) (*models.Dataset, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Dataset, error)
	GetByID(ctx context.Context, userID, id string) (*models.Dataset, error)
}
