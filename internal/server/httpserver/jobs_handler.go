package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/timex"
)

type jobRequest struct {
	Company       string      `json:"company" validate:"required"`
	Position      string      `json:"position" validate:"required"`
	Location      *string     `json:"location"`
	Status        *string     `json:"status"`
	JobPostingURL *string     `json:"job_posting_url" validate:"omitempty,url"`
	AppliedAt     *timex.Date `json:"applied_at"`
	Notes         *string     `json:"notes"`
}

func (req jobRequest) model() *models.Job {
	return &models.Job{
		Company:       req.Company,
		Position:      req.Position,
		Location:      req.Location,
		Status:        req.Status,
		JobPostingURL: req.JobPostingURL,
		AppliedAt:     req.AppliedAt,
		Notes:         req.Notes,
	}
}

// JobsHandler serves /api/jobs for the authenticated user.
type JobsHandler struct {
	resource
	jobs JobService
}

// NewJobsHandler returns a JobsHandler backed by jobs.
func NewJobsHandler(jobs JobService, logger logging.Logger) *JobsHandler {
	return &JobsHandler{resource: newResource("Job", logger), jobs: jobs}
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.ids(w, r, "")
	if !ok {
		return
	}
	list, err := h.jobs.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch jobs")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	job, err := h.jobs.Get(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.ids(w, r, "")
	if !ok {
		return
	}
	var body jobRequest
	if !h.decode(w, r, &body) {
		return
	}
	job, err := h.jobs.Create(r.Context(), userID, body.model())
	if err != nil {
		h.fail(w, r, err, "Failed to add job")
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	var body jobRequest
	if !h.decode(w, r, &body) {
		return
	}
	job, err := h.jobs.Update(r.Context(), userID, id, body.model())
	if err != nil {
		h.fail(w, r, err, "Failed to update job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	if err := h.jobs.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, r, err, "Failed to delete job")
		return
	}
	writeMessage(w, "Job deleted successfully")
}

func (h *JobsHandler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	up, err := h.jobs.CreateAttachmentUpload(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err, "Failed to prepare attachment upload")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": up.Key, "upload_url": up.UploadURL})
}

func (h *JobsHandler) GetAttachment(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	url, err := h.jobs.AttachmentDownloadURL(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch attachment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"download_url": url})
}
