package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobflow/internal/server/storage"
)

// AttachmentStore hands out presigned object-store URLs.
type AttachmentStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// AttachmentUpload is where a client should PUT a job attachment.
type AttachmentUpload struct {
	Key       string
	UploadURL string
}

// JobService manages job applications. Every method is scoped to userID;
// records owned by someone else behave exactly like missing ones.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       AttachmentStore
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager, store AttachmentStore) *JobService {
	return &JobService{db: db, repomanager: m, store: store}
}

func (s *JobService) List(ctx context.Context, userID int64) ([]*models.Job, error) {
	return s.repomanager.Jobs(s.db).ListByUser(ctx, userID)
}

func (s *JobService) Get(ctx context.Context, userID, id int64) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).GetForUser(ctx, id, userID)
}

// Create stamps the owner and fills the default status.
func (s *JobService) Create(ctx context.Context, userID int64, job *models.Job) (*models.Job, error) {
	job.UserID = userID
	if job.Status == nil || *job.Status == "" {
		status := common.DefaultJobStatus
		job.Status = &status
	}
	return s.repomanager.Jobs(s.db).Create(ctx, job)
}

// Update replaces all mutable fields of the job. Omitted optional fields
// become NULL.
func (s *JobService) Update(ctx context.Context, userID, id int64, job *models.Job) (*models.Job, error) {
	job.ID = id
	job.UserID = userID
	return s.repomanager.Jobs(s.db).UpdateForUser(ctx, job)
}

func (s *JobService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Jobs(s.db).DeleteForUser(ctx, id, userID)
}

// CreateAttachmentUpload allocates a new object key for the job, records it
// and returns a presigned upload URL. A previous attachment is replaced.
func (s *JobService) CreateAttachmentUpload(ctx context.Context, userID, id int64) (*AttachmentUpload, error) {
	key := storage.JobAttachmentKey(userID, id)

	url, err := s.store.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	if err := s.repomanager.Jobs(s.db).SetAttachmentKeyForUser(ctx, id, userID, key); err != nil {
		return nil, err
	}

	return &AttachmentUpload{Key: key, UploadURL: url}, nil
}

// AttachmentDownloadURL returns common.ErrorNotFound when the job has no
// attachment.
func (s *JobService) AttachmentDownloadURL(ctx context.Context, userID, id int64) (string, error) {
	job, err := s.repomanager.Jobs(s.db).GetForUser(ctx, id, userID)
	if err != nil {
		return "", err
	}
	if job.AttachmentKey == nil || *job.AttachmentKey == "" {
		return "", common.ErrorNotFound
	}

	url, err := s.store.PresignGet(ctx, *job.AttachmentKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}
	return url, nil
}
