package queries

import (
	"context"

	"github.com/fluxpad/fluxpad/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.QueryRecord) (*models.QueryRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.QueryRecord, error)
}
