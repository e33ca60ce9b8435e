package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobflow/internal/common"
	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/dmitrijs2005/jobflow/internal/server/services"
)

// bcrypt ignores everything past 72 bytes and x/crypto refuses it.
const maxPasswordBytes = 72

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func newSessionResponse(s *services.Session) sessionResponse {
	return sessionResponse{Token: s.Token, User: userResponse{ID: s.User.ID, Email: s.User.Email}}
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	resource
	users AuthService
}

// NewAuthHandler returns an AuthHandler backed by users.
func NewAuthHandler(users AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{resource: newResource("User", logger), users: users}
}

// readCredentials decodes the body and normalizes the email. Only a body
// that is not JSON is rejected here.
func (h *AuthHandler) readCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var body credentialsRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return body, false
	}
	body.Email = services.NormalizeEmail(body.Email)
	return body, true
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readCredentials(w, r)
	if !ok {
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		h.invalid(w, r, err)
		return
	}

	session, err := h.users.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		recordAuthAttempt("register", false)
		if errors.Is(err, common.ErrorAlreadyExists) {
			h.logger.Info(r.Context(), "registration rejected", "reason", "email taken")
		} else {
			h.logger.Error(r.Context(), "register failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "Email might already be in use")
		return
	}

	recordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

// Login answers 401 for every credential failure, including an empty or
// over-long field.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readCredentials(w, r)
	if !ok {
		return
	}
	if body.Email == "" || body.Password == "" || len(body.Password) > maxPasswordBytes {
		recordAuthAttempt("login", false)
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session, err := h.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		recordAuthAttempt("login", false)
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	recordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, newSessionResponse(session))
}
