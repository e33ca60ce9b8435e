// Package projects provides the PostgreSQL-backed project repository.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/dbx"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

const columns = `id, user_id, name, description, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanOne(row *sql.Row) (*models.Project, error) {
	p := &models.Project{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	query := `SELECT ` + columns + ` FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID int64) (*models.Project, error) {
	query := `SELECT ` + columns + ` FROM projects WHERE id = $1 AND user_id = $2`
	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	query := `INSERT INTO projects (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING ` + columns
	return scanOne(r.db.QueryRowContext(ctx, query, project.UserID, project.Name, project.Description))
}

// UpdateForUser overwrites name and description when project.UserID owns
// project.ID, otherwise common.ErrorNotFound.
func (r *PostgresRepository) UpdateForUser(ctx context.Context, project *models.Project) (*models.Project, error) {
	query := `UPDATE projects SET name = $1, description = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + columns
	return scanOne(r.db.QueryRowContext(ctx, query, project.Name, project.Description, project.ID, project.UserID))
}

// DeleteForUser removes the project; its tasks go with it (ON DELETE CASCADE).
func (r *PostgresRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
