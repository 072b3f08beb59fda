package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/rsoares/taskhub-api/internal/api"
	"github.com/rsoares/taskhub-api/internal/api/middleware"
	"github.com/rsoares/taskhub-api/internal/api/shared"
)

// setupRouter wires the handlers and middleware into the HTTP routing tree.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordHasher, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	// The public auth endpoints are the only unauthenticated write surface,
	// so they get a per-IP rate limit.
	limiter := middleware.NewRateLimiter(rate.Limit(2), 5)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{
			Status:  "OK",
			Message: "Task Management API is running",
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusNotFound, api.NotFoundResponse{
			Error:  "Route not found",
			Path:   r.URL.Path,
			Method: r.Method,
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusMethodNotAllowed, api.NotFoundResponse{
			Error:  "Method not allowed",
			Path:   r.URL.Path,
			Method: r.Method,
		})
	})

	return r
}
