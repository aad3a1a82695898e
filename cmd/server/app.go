package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskapi/internal/api/middleware"
	"github.com/phrazzld/taskapi/internal/config"
	"github.com/phrazzld/taskapi/internal/platform/postgres"
	"github.com/phrazzld/taskapi/internal/platform/ratelimit"
	"github.com/phrazzld/taskapi/internal/service"
	"github.com/phrazzld/taskapi/internal/service/auth"
	"github.com/phrazzld/taskapi/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	authService service.AuthService
	userService service.UserService
	taskService service.TaskService

	// registerLimiter is nil when rate limiting is disabled.
	registerLimiter middleware.RateLimiter
}

// newApplication wires stores, services and the optional Redis limiter
// around an already connected database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.authService, err = service.NewAuthService(app.userStore, app.jwtService, hasher, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	app.userService = service.NewUserService(app.userStore, app.taskStore, hasher, db, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, db, logger)

	if cfg.RateLimit.Enabled {
		app.redis, err = ratelimit.NewClient(ctx, cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
		app.registerLimiter = ratelimit.NewLimiter(app.redis, cfg.RateLimit.KeyPrefix)
		logger.Info("registration rate limiter initialized",
			slog.Int("limit", cfg.RateLimit.RegisterLimit),
			slog.Duration("window", cfg.RateLimit.RegisterWindow()))
	} else {
		logger.Warn("registration rate limiting disabled")
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
