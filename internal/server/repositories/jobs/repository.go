package jobs

import (
	"context"

	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

// Repository persists jobs. Every method that targets a single job is scoped
// by owner: a job owned by someone else behaves exactly like a missing one.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Job, error)
	GetForUser(ctx context.Context, id, userID int64) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	UpdateForUser(ctx context.Context, job *models.Job) (*models.Job, error)
	DeleteForUser(ctx context.Context, id, userID int64) error
	SetAttachmentKeyForUser(ctx context.Context, id, userID int64, key string) error
}
