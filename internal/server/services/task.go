package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/dbx"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/repomanager"
)

type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}

func (s *TaskService) ListByProject(ctx context.Context, userID, projectID int64) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByProjectForUser(ctx, projectID, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetForUser(ctx, id, userID)
}

// Create inserts the task only if task.ProjectID belongs to userID; otherwise
// common.ErrorNotFound. Both steps share one transaction.
func (s *TaskService) Create(ctx context.Context, userID int64, task *models.Task) (*models.Task, error) {
	task.UserID = userID
	if task.Status == nil || *task.Status == "" {
		status := common.DefaultTaskStatus
		task.Status = &status
	}

	created, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Task, error) {
		if _, err := s.repomanager.Projects(tx).GetForUser(ctx, task.ProjectID, userID); err != nil {
			return nil, fmt.Errorf("project %d: %w", task.ProjectID, err)
		}
		return s.repomanager.Tasks(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces title, description, status and due date. The task stays
// in its project.
func (s *TaskService) Update(ctx context.Context, userID, id int64, task *models.Task) (*models.Task, error) {
	task.ID = id
	task.UserID = userID
	return s.repomanager.Tasks(s.db).UpdateForUser(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Tasks(s.db).DeleteForUser(ctx, id, userID)
}
