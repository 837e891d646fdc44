package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-docgen/internal/domain"
)

// Common service errors. Callers check them with errors.Is.
var (
	// ErrNoTemplate indicates a presentation was requested without a template
	// while no default template is configured.
	// API layer maps this to HTTP 422 through domain.ErrConfiguration.
	ErrNoTemplate = errors.New("no template uploaded and no default template configured")

	// ErrLimitExceeded indicates a request is larger than the configured limits.
	// It is always wrapped in a domain.ValidationError.
	ErrLimitExceeded = errors.New("request exceeds configured limits")

	// ErrUnsupportedFormat indicates an unknown exam export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// DocumentServiceError wraps unexpected errors from the document service with context.
type DocumentServiceError struct {
	// Operation is the operation that failed (e.g., "build_presentation", "export_exam")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DocumentServiceError.
func (e *DocumentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("document service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("document service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DocumentServiceError) Unwrap() error {
	return e.Err
}

// NewDocumentServiceError creates a new DocumentServiceError.
// Validation and configuration errors are returned unchanged so the API
// layer can map them to client errors.
func NewDocumentServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConfiguration) {
		return err
	}

	return &DocumentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
