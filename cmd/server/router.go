package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-docgen/internal/api"
	apiMiddleware "github.com/phrazzld/scry-docgen/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	documentHandler := api.NewDocumentHandler(
		app.documentService,
		app.config.Limits.MaxUploadBytes,
		app.logger,
	)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/presentations", documentHandler.CreatePresentation)
		r.Post("/exams", documentHandler.ExportExam)
	})

	// Health check endpoint
	r.Get("/health", documentHandler.Health)

	return r
}
