package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/timex"
)

type createTaskRequest struct {
	ProjectID   int64       `json:"project_id" validate:"required,gt=0"`
	Title       string      `json:"title" validate:"required"`
	Description *string     `json:"description"`
	Status      *string     `json:"status"`
	DueDate     *timex.Date `json:"due_date"`
}

// updateTaskRequest has no project_id; tasks never change project.
type updateTaskRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description *string     `json:"description"`
	Status      *string     `json:"status"`
	DueDate     *timex.Date `json:"due_date"`
}

// TasksHandler serves /api/tasks for the authenticated user.
type TasksHandler struct {
	resource
	tasks TaskService
}

// NewTasksHandler returns a TasksHandler backed by tasks.
func NewTasksHandler(tasks TaskService, logger logging.Logger) *TasksHandler {
	return &TasksHandler{resource: newResource("Task", logger), tasks: tasks}
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.ids(w, r, "")
	if !ok {
		return
	}
	list, err := h.tasks.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch tasks")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TasksHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.ids(w, r, "projectId")
	if !ok {
		return
	}
	list, err := h.tasks.ListByProject(r.Context(), userID, projectID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch tasks")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	task, err := h.tasks.Get(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.ids(w, r, "")
	if !ok {
		return
	}
	var body createTaskRequest
	if !h.decode(w, r, &body) {
		return
	}
	task, err := h.tasks.Create(r.Context(), userID, &models.Task{
		ProjectID:   body.ProjectID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		DueDate:     body.DueDate,
	})
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		h.fail(w, r, err, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	var body updateTaskRequest
	if !h.decode(w, r, &body) {
		return
	}
	task, err := h.tasks.Update(r.Context(), userID, id, &models.Task{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		DueDate:     body.DueDate,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	if err := h.tasks.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, r, err, "Failed to delete task")
		return
	}
	writeMessage(w, "Task deleted successfully")
}
