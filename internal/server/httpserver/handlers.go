package httpserver

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/dmitrijs2005/jobflow/internal/server/models"
	"github.com/dmitrijs2005/jobflow/internal/server/services"
	"github.com/go-playground/validator/v10"
)

// AuthService registers users and logs them in.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
}

// JobService is the owner-scoped job store behind JobsHandler.
type JobService interface {
	List(ctx context.Context, userID int64) ([]*models.Job, error)
	Get(ctx context.Context, userID, id int64) (*models.Job, error)
	Create(ctx context.Context, userID int64, job *models.Job) (*models.Job, error)
	Update(ctx context.Context, userID, id int64, job *models.Job) (*models.Job, error)
	Delete(ctx context.Context, userID, id int64) error
	CreateAttachmentUpload(ctx context.Context, userID, id int64) (*services.AttachmentUpload, error)
	AttachmentDownloadURL(ctx context.Context, userID, id int64) (string, error)
}

// ProjectService is the owner-scoped project store behind ProjectsHandler.
type ProjectService interface {
	List(ctx context.Context, userID int64) ([]*models.Project, error)
	Get(ctx context.Context, userID, id int64) (*models.Project, error)
	Create(ctx context.Context, userID int64, project *models.Project) (*models.Project, error)
	Update(ctx context.Context, userID, id int64, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, userID, id int64) error
}

// TaskService is the owner-scoped task store behind TasksHandler.
type TaskService interface {
	List(ctx context.Context, userID int64) ([]*models.Task, error)
	ListByProject(ctx context.Context, userID, projectID int64) ([]*models.Task, error)
	Get(ctx context.Context, userID, id int64) (*models.Task, error)
	Create(ctx context.Context, userID int64, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, userID, id int64, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}

// resource carries what every owner-scoped handler needs.
type resource struct {
	kind     string
	validate *validator.Validate
	logger   logging.Logger
}

func newResource(kind string, logger logging.Logger) resource {
	return resource{kind: kind, validate: newValidator(), logger: logger}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return "Invalid fields: " + strings.Join(parts, ", ")
}

// invalid answers 400 for a body that failed validation.
func (h resource) invalid(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Debug(r.Context(), "request validation failed", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusBadRequest, validationMessage(err))
}

// decode reads and validates the JSON body into dst, answering 400 itself
// on failure.
func (h resource) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.invalid(w, r, err)
		return false
	}
	return true
}

// ids returns the caller and the {id} path parameter. A malformed id cannot
// name an existing record, so it is reported as not found.
func (h resource) ids(w http.ResponseWriter, r *http.Request, param string) (userID, id int64, ok bool) {
	userID, ok = UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return 0, 0, false
	}
	if param == "" {
		return userID, 0, true
	}
	id, ok = pathID(r, param)
	if !ok {
		h.notFound(w)
		return 0, 0, false
	}
	return userID, id, true
}

func (h resource) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, h.kind+" not found")
}

// fail maps err onto 404 or a generic 500. The cause is only logged.
func (h resource) fail(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	if errors.Is(err, common.ErrorNotFound) {
		h.notFound(w)
		return
	}
	h.logger.Error(r.Context(), failMsg, "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, failMsg)
}
