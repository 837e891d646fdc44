package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when caller-supplied content fails validation.
	// This is usually wrapped in a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration is returned when a template package does not have the
	// shape the generators require.
	ErrConfiguration = errors.New("invalid template configuration")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrLevelOrder is returned when a bullet child is not nested deeper than its parent.
	ErrLevelOrder = errors.New("bullet level must be greater than its parent level")
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil the error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation for every ValidationError, regardless of the
// more specific error it wraps.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigurationError describes a template package the engine cannot work with.
type ConfigurationError struct {
	Message string
	Err     error
}

// NewConfigurationError creates a ConfigurationError. The optional cause is
// kept for logging and errors.Is checks.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{Message: message, Err: cause}
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid template configuration: %s", e.Message)
	}
	return fmt.Sprintf("invalid template configuration: %s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports ErrConfiguration for every ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
