// Package httpserver exposes the JobFlow REST API over chi.
package httpserver

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports database reachability for /healthz.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig carries the handlers and collaborators NewRouter mounts.
type RouterConfig struct {
	Auth     *AuthHandler
	Jobs     *JobsHandler
	Projects *ProjectsHandler
	Tasks    *TasksHandler
	Tokens   TokenVerifier
	DB       Pinger
	Logger   logging.Logger
	// AuthRateLimit applies to /api/auth/*, e.g. "20-M". Empty disables it.
	AuthRateLimit string
}

// NewRouter builds the chi router with the public, auth and owner-scoped routes.
// The auth rate limit keys on the connection address, never on forwarding headers.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	authLimit, err := newIPRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return nil, err
	}
	requireAuth := RequireAuth(cfg.Tokens, cfg.Logger)

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimid.Recoverer)
	r.Use(prometheusMiddleware)
	r.Use(newSecure())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("JobFlow backend is running!"))
	})
	r.Get("/healthz", healthHandler(cfg.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(authLimit)
		r.Post("/register", cfg.Auth.Register)
		r.Post("/login", cfg.Auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/api/jobs", func(r chi.Router) {
			r.Get("/", cfg.Jobs.List)
			r.Post("/", cfg.Jobs.Create)
			r.Get("/{id}", cfg.Jobs.Get)
			r.Put("/{id}", cfg.Jobs.Update)
			r.Delete("/{id}", cfg.Jobs.Delete)
			r.Post("/{id}/attachment", cfg.Jobs.CreateAttachment)
			r.Get("/{id}/attachment", cfg.Jobs.GetAttachment)
		})

		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", cfg.Projects.List)
			r.Post("/", cfg.Projects.Create)
			r.Get("/{id}", cfg.Projects.Get)
			r.Put("/{id}", cfg.Projects.Update)
			r.Delete("/{id}", cfg.Projects.Delete)
		})

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", cfg.Tasks.List)
			r.Post("/", cfg.Tasks.Create)
			r.Get("/project/{projectId}", cfg.Tasks.ListByProject)
			r.Get("/{id}", cfg.Tasks.Get)
			r.Put("/{id}", cfg.Tasks.Update)
			r.Delete("/{id}", cfg.Tasks.Delete)
		})
	})

	return r, nil
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
