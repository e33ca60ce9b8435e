// Package memory is an in-process RepositoryManager. It keeps the same
// ownership and ordering rules as the PostgreSQL repositories and backs the
// service and HTTP tests.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/dbx"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/projects"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/users"
)

// Store holds every table. The DBTX handed to the factories is ignored, so
// transactions are not isolated; each call is atomic on its own.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	now      func() time.Time
	users    map[int64]models.User
	jobs     map[int64]models.Job
	projects map[int64]models.Project
	tasks    map[int64]models.Task
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    map[int64]models.User{},
		jobs:     map[int64]models.Job{},
		projects: map[int64]models.Project{},
		tasks:    map[int64]models.Task{},
	}
}

func (s *Store) RunMigrations(context.Context, *sql.DB) error { return nil }

func (s *Store) Users(dbx.DBTX) users.Repository       { return userRepo{s} }
func (s *Store) Jobs(dbx.DBTX) jobs.Repository         { return jobRepo{s} }
func (s *Store) Projects(dbx.DBTX) projects.Repository { return projectRepo{s} }
func (s *Store) Tasks(dbx.DBTX) tasks.Repository       { return taskRepo{s} }

// stamp must be called with mu held.
func (s *Store) stamp() (int64, time.Time) {
	s.nextID++
	return s.nextID, s.now().UTC()
}

func newestFirst[T any](items []*T, created func(*T) time.Time, id func(*T) int64) []*T {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
	return items
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return nil, common.ErrorAlreadyExists
		}
	}
	id, now := r.s.stamp()
	u := models.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: now}
	r.s.users[id] = u
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type jobRepo struct{ s *Store }

func (r jobRepo) ListByUser(_ context.Context, userID int64) ([]*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Job, 0)
	for _, j := range r.s.jobs {
		if j.UserID == userID {
			j := j
			result = append(result, &j)
		}
	}
	return newestFirst(result,
		func(j *models.Job) time.Time { return j.CreatedAt },
		func(j *models.Job) int64 { return j.ID }), nil
}

func (r jobRepo) GetForUser(_ context.Context, id, userID int64) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok || j.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &j, nil
}

func (r jobRepo) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j := *job
	j.ID, j.CreatedAt = r.s.stamp()
	j.AttachmentKey = nil
	r.s.jobs[j.ID] = j
	return &j, nil
}

func (r jobRepo) UpdateForUser(_ context.Context, job *models.Job) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.jobs[job.ID]
	if !ok || cur.UserID != job.UserID {
		return nil, common.ErrorNotFound
	}
	j := *job
	j.CreatedAt = cur.CreatedAt
	j.AttachmentKey = cur.AttachmentKey
	r.s.jobs[j.ID] = j
	return &j, nil
}

func (r jobRepo) DeleteForUser(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok || j.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.jobs, id)
	return nil
}

func (r jobRepo) SetAttachmentKeyForUser(_ context.Context, id, userID int64, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok || j.UserID != userID {
		return common.ErrorNotFound
	}
	j.AttachmentKey = &key
	r.s.jobs[id] = j
	return nil
}

type projectRepo struct{ s *Store }

func (r projectRepo) ListByUser(_ context.Context, userID int64) ([]*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Project, 0)
	for _, p := range r.s.projects {
		if p.UserID == userID {
			p := p
			result = append(result, &p)
		}
	}
	return newestFirst(result,
		func(p *models.Project) time.Time { return p.CreatedAt },
		func(p *models.Project) int64 { return p.ID }), nil
}

func (r projectRepo) GetForUser(_ context.Context, id, userID int64) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r projectRepo) Create(_ context.Context, project *models.Project) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := *project
	p.ID, p.CreatedAt = r.s.stamp()
	r.s.projects[p.ID] = p
	return &p, nil
}

func (r projectRepo) UpdateForUser(_ context.Context, project *models.Project) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.projects[project.ID]
	if !ok || cur.UserID != project.UserID {
		return nil, common.ErrorNotFound
	}
	p := *project
	p.CreatedAt = cur.CreatedAt
	r.s.projects[p.ID] = p
	return &p, nil
}

// DeleteForUser cascades to the project's tasks like the SQL schema does.
func (r projectRepo) DeleteForUser(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.projects, id)
	for tid, t := range r.s.tasks {
		if t.ProjectID == id {
			delete(r.s.tasks, tid)
		}
	}
	return nil
}

type taskRepo struct{ s *Store }

func (r taskRepo) list(match func(models.Task) bool) []*models.Task {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Task, 0)
	for _, t := range r.s.tasks {
		if match(t) {
			t := t
			result = append(result, &t)
		}
	}
	return newestFirst(result,
		func(t *models.Task) time.Time { return t.CreatedAt },
		func(t *models.Task) int64 { return t.ID })
}

func (r taskRepo) ListByUser(_ context.Context, userID int64) ([]*models.Task, error) {
	return r.list(func(t models.Task) bool { return t.UserID == userID }), nil
}

func (r taskRepo) ListByProjectForUser(_ context.Context, projectID, userID int64) ([]*models.Task, error) {
	return r.list(func(t models.Task) bool { return t.UserID == userID && t.ProjectID == projectID }), nil
}

func (r taskRepo) GetForUser(_ context.Context, id, userID int64) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r taskRepo) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := *task
	t.ID, t.CreatedAt = r.s.stamp()
	r.s.tasks[t.ID] = t
	return &t, nil
}

func (r taskRepo) UpdateForUser(_ context.Context, task *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.tasks[task.ID]
	if !ok || cur.UserID != task.UserID {
		return nil, common.ErrorNotFound
	}
	t := *task
	t.ProjectID = cur.ProjectID
	t.CreatedAt = cur.CreatedAt
	r.s.tasks[t.ID] = t
	return &t, nil
}

func (r taskRepo) DeleteForUser(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.tasks, id)
	return nil
}
