package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Templates TemplatesConfig `mapstructure:"templates" validate:"required"`
	Limits    LimitsConfig    `mapstructure:"limits" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// TemplatesConfig controls where presentation templates come from and how
// content templates are chosen.
type TemplatesConfig struct {
	// DefaultPath is the .pptx used when a request carries no template.
	// Empty means every request must upload one.
	DefaultPath string `mapstructure:"default_path"`
	Selection   string `mapstructure:"selection" validate:"required,oneof=random round_robin"`
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	MaxUploadBytes   int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
	MaxContentSlides int   `mapstructure:"max_content_slides" validate:"required,gt=0"`
	MaxQuestions     int   `mapstructure:"max_questions" validate:"required,gt=0"`
}
