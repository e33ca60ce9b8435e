// Package tasks provides the PostgreSQL-backed task repository.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/dbx"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

const columns = `id, user_id, project_id, title, description, status, due_date, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func scanOne(row *sql.Row) (*models.Task, error) {
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListByUser returns all of the user's tasks across projects, most recent first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

// ListByProjectForUser returns the tasks of one project. A project the user
// does not own simply yields no rows.
func (r *PostgresRepository) ListByProjectForUser(ctx context.Context, projectID, userID int64) ([]*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks
		WHERE project_id = $1 AND user_id = $2
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, projectID, userID)
}

func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID int64) (*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `INSERT INTO tasks (user_id, project_id, title, description, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	return scanOne(r.db.QueryRowContext(ctx, query,
		task.UserID, task.ProjectID, task.Title, task.Description, task.Status, task.DueDate))
}

// UpdateForUser overwrites title, description, status and due_date. The
// project a task belongs to never changes.
func (r *PostgresRepository) UpdateForUser(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `UPDATE tasks
		SET title = $1, description = $2, status = $3, due_date = $4
		WHERE id = $5 AND user_id = $6
		RETURNING ` + columns

	return scanOne(r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Status, task.DueDate, task.ID, task.UserID))
}

func (r *PostgresRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
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
