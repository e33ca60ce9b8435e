package tasks

import (
	"context"

	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	ListByProjectForUser(ctx context.Context, projectID, userID int64) ([]*models.Task, error)
	GetForUser(ctx context.Context, id, userID int64) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	UpdateForUser(ctx context.Context, task *models.Task) (*models.Task, error)
	DeleteForUser(ctx context.Context, id, userID int64) error
}
