package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/taskapi/internal/api"
	apiMiddleware "github.com/phrazzld/taskapi/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(corsOptions(app.config.Server.CORSAllowedOrigins)))

	authHandler := api.NewAuthHandler(app.authService)
	userHandler := api.NewUserHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Get("/health", api.NewHealthHandler(app.db).ServeHTTP)

	r.Group(func(r chi.Router) {
		if app.registerLimiter != nil {
			limit := apiMiddleware.NewRateLimitMiddleware(app.registerLimiter, "register",
				app.config.RateLimit.RegisterLimit, app.config.RateLimit.RegisterWindow())
			r.Use(limit.Limit)
		}
		r.Post("/register", authHandler.Register)
	})
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/admin/users", userHandler.List)
		r.Post("/admin/user", userHandler.Create)
		r.Route("/admin/user/{id}", func(r chi.Router) {
			r.Get("/", userHandler.Get)
			r.Put("/", userHandler.Update)
			r.Delete("/", userHandler.Delete)
			r.Get("/tasks", userHandler.ListTasks)
		})

		r.Get("/tasks", taskHandler.List)
		r.Get("/tasks-by-role", taskHandler.ListByRole)
		r.Post("/task", taskHandler.Create)
		r.Route("/task/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.Get)
			r.Put("/", taskHandler.Update)
			r.Delete("/", taskHandler.Delete)
		})
	})

	return r
}

// corsOptions builds the CORS policy from a comma separated origin list.
// An empty list allows any origin.
func corsOptions(allowedOrigins string) cors.Options {
	origins := []string{"*"}
	if trimmed := strings.TrimSpace(allowedOrigins); trimmed != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(trimmed, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}
