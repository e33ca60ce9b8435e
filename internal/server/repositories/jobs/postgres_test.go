package jobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobColumns = []string{"id", "user_id", "company", "position", "location", "status",
	"job_posting_url", "applied_at", "notes", "attachment_key", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func strPtr(s string) *string { return &s }

func TestListByUser_OrderedAndScoped(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(jobColumns).
		AddRow(int64(2), int64(7), "Acme", "SRE", nil, "applied", nil, time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), nil, nil, newer).
		AddRow(int64(1), int64(7), "Initech", "Dev", "Remote", "wishlist", "https://jobs.example/1", nil, "note", "users/7/jobs/1/k", older)

	mock.ExpectQuery(`SELECT id, user_id, company, .* FROM jobs WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].ID)
	assert.Nil(t, got[0].Location)
	require.NotNil(t, got[0].AppliedAt)
	assert.Equal(t, "2025-01-30", got[0].AppliedAt.String())

	assert.Equal(t, "Remote", *got[1].Location)
	assert.Equal(t, "users/7/jobs/1/k", *got[1].AttachmentKey)
	assert.Nil(t, got[1].AppliedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM jobs WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(jobColumns))

	got, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM jobs`).WillReturnError(errors.New("boom"))

	_, err := repo.ListByUser(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestGetForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM jobs WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow(int64(5), int64(7), "Acme", "SRE", nil, "wishlist", nil, nil, nil, nil, time.Now()))

	j, err := repo.GetForUser(context.Background(), 5, 7)
	require.NoError(t, err)
	assert.Equal(t, "Acme", j.Company)

	mock.ExpectQuery(`FROM jobs WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetForUser(context.Background(), 5, 8)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_InsertsAndReturnsRow(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	applied := timex.NewDate(2025, time.March, 1)
	created := time.Now()

	mock.ExpectQuery(`INSERT INTO jobs \(user_id, company, position, location, status, job_posting_url, applied_at, notes\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\) RETURNING id, user_id`).
		WithArgs(int64(7), "Acme", "SRE", nil, "wishlist", "https://x", "2025-03-01", nil).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow(int64(10), int64(7), "Acme", "SRE", nil, "wishlist", "https://x", applied.Time, nil, nil, created))

	j, err := repo.Create(context.Background(), &models.Job{
		UserID:        7,
		Company:       "Acme",
		Position:      "SRE",
		Status:        strPtr("wishlist"),
		JobPostingURL: strPtr("https://x"),
		AppliedAt:     &applied,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), j.ID)
	assert.Equal(t, created, j.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForUser_ConditionalOnOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE jobs SET company = \$1, position = \$2, location = \$3, status = \$4, job_posting_url = \$5, applied_at = \$6, notes = \$7 WHERE id = \$8 AND user_id = \$9 RETURNING`).
		WithArgs("Acme", "Staff SRE", nil, "offer", nil, nil, nil, int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow(int64(5), int64(7), "Acme", "Staff SRE", nil, "offer", nil, nil, nil, nil, time.Now()))

	j, err := repo.UpdateForUser(context.Background(), &models.Job{
		ID: 5, UserID: 7, Company: "Acme", Position: "Staff SRE", Status: strPtr("offer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff SRE", j.Position)
	assert.Nil(t, j.Location)
}

func TestUpdateForUser_NotOwnedIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE jobs SET .* WHERE id = \$8 AND user_id = \$9`).
		WillReturnRows(sqlmock.NewRows(jobColumns))

	_, err := repo.UpdateForUser(context.Background(), &models.Job{ID: 5, UserID: 8, Company: "x", Position: "y"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteForUser(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		check    func(t *testing.T, err error)
	}{
		{"deleted", 1, nil, func(t *testing.T, err error) { assert.NoError(t, err) }},
		{"not owned or missing", 0, nil, func(t *testing.T, err error) { assert.ErrorIs(t, err, common.ErrorNotFound) }},
		{"unexpected count", 2, nil, func(t *testing.T, err error) { assert.EqualError(t, err, "unexpected rows affected: 2") }},
		{"exec error", 0, errors.New("boom"), func(t *testing.T, err error) { assert.EqualError(t, err, "db error: boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			exp := mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1 AND user_id = \$2`).WithArgs(int64(5), int64(7))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			tt.check(t, repo.DeleteForUser(context.Background(), 5, 7))
		})
	}
}

func TestSetAttachmentKeyForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE jobs SET attachment_key = \$1 WHERE id = \$2 AND user_id = \$3`).
		WithArgs("users/7/jobs/5/k", int64(5), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetAttachmentKeyForUser(context.Background(), 5, 7, "users/7/jobs/5/k"))

	mock.ExpectExec(`UPDATE jobs SET attachment_key`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetAttachmentKeyForUser(context.Background(), 5, 8, "k"), common.ErrorNotFound)
}
