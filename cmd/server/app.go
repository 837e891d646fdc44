package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/scry-docgen/internal/config"
	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/exam"
	"github.com/phrazzld/scry-docgen/internal/presentation"
	"github.com/phrazzld/scry-docgen/internal/service"
)

// application holds all the shared application dependencies.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Service interfaces
	documentService service.DocumentService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	// Load the default template, if one is configured
	defaultTemplate, err := loadDefaultTemplate(cfg.Templates.DefaultPath)
	if err != nil {
		return nil, err
	}

	// Create the generators
	selection, err := presentation.ParseSelection(cfg.Templates.Selection)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template selection: %w", err)
	}
	assembler := presentation.NewAssembler(logger, presentation.WithSelection(selection))
	exporter := exam.NewExporter(logger)

	// Initialize document service
	app.documentService, err = service.NewDocumentService(
		assembler,
		exporter,
		defaultTemplate,
		service.Limits{
			MaxContentSlides: cfg.Limits.MaxContentSlides,
			MaxQuestions:     cfg.Limits.MaxQuestions,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"default_template", len(defaultTemplate) > 0,
		"template_selection", selection)
	return app, nil
}

// loadDefaultTemplate reads the configured default template. An empty path
// means requests must upload their own template.
func loadDefaultTemplate(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigurationError("default template cannot be read", err)
	}
	return data, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
