package tasks

import (
	"context"
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

var taskColumns = []string{"id", "user_id", "project_id", "title", "description", "status", "due_date", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func strp(s string) *string { return &s }

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM tasks WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(8), int64(5), int64(2), "Write CV", nil, "todo", due, time.Now()).
			AddRow(int64(7), int64(5), int64(3), "Call", "recruiter", "done", nil, time.Now()))

	got, err := repo.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-04-01", got[0].DueDate.String())
	assert.Nil(t, got[0].Description)
	assert.Nil(t, got[1].DueDate)
	assert.Equal(t, "done", *got[1].Status)
}

func TestListByProjectForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM tasks WHERE project_id = \$1 AND user_id = \$2`).
		WithArgs(int64(2), int64(5)).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	got, err := repo.ListByProjectForUser(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM tasks`).WillReturnError(errors.New("conn reset"))

	_, err := repo.ListByUser(context.Background(), 5)
	assert.EqualError(t, err, "db error: conn reset")
}

func TestGetForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(8), int64(5)).
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow(int64(8), int64(5), int64(2), "Write CV", nil, "todo", nil, time.Now()))

	task, err := repo.GetForUser(context.Background(), 8, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), task.ProjectID)

	mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(8), int64(6)).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	_, err = repo.GetForUser(context.Background(), 8, 6)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	due := timex.NewDate(2025, time.May, 2)

	mock.ExpectQuery(`INSERT INTO tasks \(user_id, project_id, title, description, status, due_date\)`).
		WithArgs(int64(5), int64(2), "Prep", nil, "todo", "2025-05-02").
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(9), int64(5), int64(2), "Prep", nil, "todo", due.Time, time.Now()))

	task, err := repo.Create(context.Background(), &models.Task{
		UserID: 5, ProjectID: 2, Title: "Prep", Status: strp("todo"), DueDate: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), task.ID)
	assert.Equal(t, due, *task.DueDate)
}

func TestUpdateForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE tasks SET title = \$1, description = \$2, status = \$3, due_date = \$4 WHERE id = \$5 AND user_id = \$6 RETURNING`).
		WithArgs("Prep", "notes", "in-progress", nil, int64(9), int64(5)).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(9), int64(5), int64(2), "Prep", "notes", "in-progress", nil, time.Now()))

	task, err := repo.UpdateForUser(context.Background(), &models.Task{
		ID: 9, UserID: 5, ProjectID: 99, Title: "Prep", Description: strp("notes"), Status: strp("in-progress"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), task.ProjectID)

	mock.ExpectQuery(`UPDATE tasks`).
		WithArgs("Prep", nil, nil, nil, int64(9), int64(6)).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	_, err = repo.UpdateForUser(context.Background(), &models.Task{ID: 9, UserID: 6, Title: "Prep"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteForUser(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"not owned or missing", 0, common.ErrorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1 AND user_id = \$2`).
				WithArgs(int64(9), int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeleteForUser(context.Background(), 9, 5)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
