package projects

import (
	"context"

	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Project, error)
	GetForUser(ctx context.Context, id, userID int64) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateForUser(ctx context.Context, project *models.Project) (*models.Project, error)
	DeleteForUser(ctx context.Context, id, userID int64) error
}
