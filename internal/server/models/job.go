package models

import (
	"time"

	"github.com/dmitrijs2005/jobflow/internal/timex"
)

// Job is a job-application tracking record owned by UserID. Nil pointer
// fields are stored as NULL.
type Job struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	Company       string      `json:"company"`
	Position      string      `json:"position"`
	Location      *string     `json:"location"`
	Status        *string     `json:"status"`
	JobPostingURL *string     `json:"job_posting_url"`
	AppliedAt     *timex.Date `json:"applied_at"`
	Notes         *string     `json:"notes"`
	AttachmentKey *string     `json:"attachment_key"`
	CreatedAt     time.Time   `json:"created_at"`
}
