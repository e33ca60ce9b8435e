package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/repomanager"
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

func (s *ProjectService) List(ctx context.Context, userID int64) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).ListByUser(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, userID, id int64) (*models.Project, error) {
	return s.repomanager.Projects(s.db).GetForUser(ctx, id, userID)
}

func (s *ProjectService) Create(ctx context.Context, userID int64, project *models.Project) (*models.Project, error) {
	project.UserID = userID
	return s.repomanager.Projects(s.db).Create(ctx, project)
}

func (s *ProjectService) Update(ctx context.Context, userID, id int64, project *models.Project) (*models.Project, error) {
	project.ID = id
	project.UserID = userID
	return s.repomanager.Projects(s.db).UpdateForUser(ctx, project)
}

// Delete removes the project together with its tasks.
func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Projects(s.db).DeleteForUser(ctx, id, userID)
}
