// Package main implements the entry point for the document generation server,
// which assembles presentation decks from templates and exports exam
// documents with answer keys.
package main

import (
	"context"
	"fmt"
	"log"
)

// main is the entry point for the docgen server.
// It loads configuration, sets up logging, wires the generators into the
// document service and serves HTTP until SIGINT or SIGTERM.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run holds the core startup sequence so it can be exercised from tests.
func run(ctx context.Context) error {
	// 1. Load configuration
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	// 2. Set up structured logging using the configured log level
	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	// 3. Wire the application
	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// 4. Serve until shutdown
	return app.Run(ctx)
}
