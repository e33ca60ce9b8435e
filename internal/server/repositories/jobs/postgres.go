// Package jobs provides the PostgreSQL-backed job repository.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/dbx"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

const columns = `id, user_id, company, position, location, status, job_posting_url, applied_at, notes, attachment_key, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.UserID, &j.Company, &j.Position, &j.Location, &j.Status,
		&j.JobPostingURL, &j.AppliedAt, &j.Notes, &j.AttachmentKey, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func scanOne(row *sql.Row) (*models.Job, error) {
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

// ListByUser returns the user's jobs, most recent first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID int64) (*models.Job, error) {
	query := `SELECT ` + columns + ` FROM jobs
		WHERE id = $1 AND user_id = $2`

	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// Create inserts job as given; the caller is responsible for UserID and defaults.
func (r *PostgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `INSERT INTO jobs (user_id, company, position, location, status, job_posting_url, applied_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	return scanOne(r.db.QueryRowContext(ctx, query,
		job.UserID, job.Company, job.Position, job.Location, job.Status,
		job.JobPostingURL, job.AppliedAt, job.Notes))
}

// UpdateForUser overwrites every mutable field of the job identified by
// job.ID, provided it belongs to job.UserID. The ownership check and the
// write are one statement; no match yields common.ErrorNotFound.
func (r *PostgresRepository) UpdateForUser(ctx context.Context, job *models.Job) (*models.Job, error) {
	query := `UPDATE jobs
		SET company = $1, position = $2, location = $3, status = $4,
			job_posting_url = $5, applied_at = $6, notes = $7
		WHERE id = $8 AND user_id = $9
		RETURNING ` + columns

	return scanOne(r.db.QueryRowContext(ctx, query,
		job.Company, job.Position, job.Location, job.Status,
		job.JobPostingURL, job.AppliedAt, job.Notes,
		job.ID, job.UserID))
}

// DeleteForUser removes the job if userID owns it, else common.ErrorNotFound.
func (r *PostgresRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM jobs WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// SetAttachmentKeyForUser records the object-storage key of the job's attachment.
func (r *PostgresRepository) SetAttachmentKeyForUser(ctx context.Context, id, userID int64, key string) error {
	query := `UPDATE jobs SET attachment_key = $1 WHERE id = $2 AND user_id = $3`

	res, err := r.db.ExecContext(ctx, query, key, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
