package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-docgen/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"template_selection", cfg.Templates.Selection)

	if cfg.Templates.DefaultPath != "" {
		slog.Debug("Template configuration", "default_template_present", true)
	}

	return cfg, nil
}
