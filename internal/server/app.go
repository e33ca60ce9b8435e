// Package server initializes and runs the JobFlow API: it opens the
// database, applies migrations, wires services into the HTTP router and
// serves until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jobflow/internal/logging"
	"github.com/dmitrijs2005/jobflow/internal/server/auth"
	"github.com/dmitrijs2005/jobflow/internal/server/config"
	"github.com/dmitrijs2005/jobflow/internal/server/httpserver"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobflow/internal/server/services"
	"github.com/dmitrijs2005/jobflow/internal/server/storage"
)

// seams for tests
var (
	openDB         = repomanager.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpserver.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := wire(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func wire(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm := newRepoManager()

	if c.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migrations error: %w", err)
		}
	}

	var now time.Time
	if err := db.QueryRowContext(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return nil, fmt.Errorf("db time query error: %w", err)
	}
	logger.Info(ctx, "Connected to database", "db_time", now)

	store, err := storage.NewS3Store(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "JWT secret is the built-in default, set JWT_SECRET")
	}
	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, hasher, tokens, logger)
	js := services.NewJobService(db, rm, store)
	ps := services.NewProjectService(db, rm)
	ts := services.NewTaskService(db, rm)

	apiLogger := logger.With("module", "api")
	router, err := httpserver.NewRouter(httpserver.RouterConfig{
		Auth:          httpserver.NewAuthHandler(us, apiLogger),
		Jobs:          httpserver.NewJobsHandler(js, apiLogger),
		Projects:      httpserver.NewProjectsHandler(ps, apiLogger),
		Tasks:         httpserver.NewTasksHandler(ts, apiLogger),
		Tokens:        tokens,
		DB:            db,
		Logger:        apiLogger,
		AuthRateLimit: c.AuthRateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("router init error: %w", err)
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: httpserver.NewServer(c.EndpointAddrHTTP, router, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database pool.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close failed", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
