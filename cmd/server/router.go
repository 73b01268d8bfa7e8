package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/exercise-tracker/internal/api"
	apiMiddleware "github.com/phrazzld/exercise-tracker/internal/api/middleware"
)

const corsMaxAgeSeconds = 300

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Metrics(app.metrics))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         corsMaxAgeSeconds,
	}))

	userHandler := api.NewUserHandler(app.userService)
	exerciseHandler := api.NewExerciseHandler(app.exerciseService)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Post("/{"+api.UserIDParam+"}/exercises", exerciseHandler.AddExercise)
		r.Get("/{"+api.UserIDParam+"}/logs", exerciseHandler.GetLog)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", app.metrics.Handler())

	if dir := app.config.Server.StaticDir; dir != "" {
		r.Handle("/*", http.FileServer(http.Dir(dir)))
		app.logger.Info("Serving static files", "dir", dir)
	}

	return r
}
