package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
)

type projectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// ProjectsHandler serves /api/projects for the authenticated user.
type ProjectsHandler struct {
	resource
	projects ProjectService
}

// NewProjectsHandler returns a ProjectsHandler backed by projects.
func NewProjectsHandler(projects ProjectService, logger logging.Logger) *ProjectsHandler {
	return &ProjectsHandler{resource: newResource("Project", logger), projects: projects}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.ids(w, r, "")
	if !ok {
		return
	}
	list, err := h.projects.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch projects")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	p, err := h.projects.Get(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch project")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.ids(w, r, "")
	if !ok {
		return
	}
	var body projectRequest
	if !h.decode(w, r, &body) {
		return
	}
	p, err := h.projects.Create(r.Context(), userID, &models.Project{Name: body.Name, Description: body.Description})
	if err != nil {
		h.fail(w, r, err, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	var body projectRequest
	if !h.decode(w, r, &body) {
		return
	}
	p, err := h.projects.Update(r.Context(), userID, id, &models.Project{Name: body.Name, Description: body.Description})
	if err != nil {
		h.fail(w, r, err, "Failed to update project")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.ids(w, r, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, r, err, "Failed to delete project")
		return
	}
	writeMessage(w, "Project deleted successfully")
}
