package models

import (
	"time"

	"github.com/dmitrijs2005/jobflow/internal/timex"
)

// Task belongs to a Project and is owned by UserID.
type Task struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	ProjectID   int64       `json:"project_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Status      *string     `json:"status"`
	DueDate     *timex.Date `json:"due_date"`
	CreatedAt   time.Time   `json:"created_at"`
}
