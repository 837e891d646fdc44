package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-docgen/internal/api/shared"
	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/pptx"
	"github.com/phrazzld/scry-docgen/internal/presentation"
	"github.com/phrazzld/scry-docgen/internal/service"
)

// ErrRequestTooLarge is returned when a request body exceeds the upload limit.
var ErrRequestTooLarge = errors.New("request body too large")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var maxBytesErr *http.MaxBytesError

	switch {
	// Oversized uploads
	case errors.Is(err, ErrRequestTooLarge),
		errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge

	// Caller content failed validation
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Template package cannot be used
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, ErrRequestTooLarge),
		errors.As(err, &maxBytesErr):
		return "Request body too large"

	case errors.As(err, &validationErr):
		if validationErr.Field == "" {
			return "Validation failed: " + validationErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is empty"

	case errors.Is(err, service.ErrNoTemplate):
		return "A template file is required"

	case errors.Is(err, presentation.ErrTemplateShape):
		return fmt.Sprintf("Template must contain at least %d slides", presentation.MinSlots)

	case errors.Is(err, pptx.ErrNotPackage),
		errors.Is(err, pptx.ErrNotPresentation):
		return "Template is not a presentation file"

	case errors.Is(err, domain.ErrConfiguration):
		return "Template could not be used"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status code and safe message for err.
// defaultMsg replaces the generic message of server errors when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError writes a 400 response for a request that failed
// decoding or struct validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	message := SanitizeValidationError(err)
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, shared.ErrEmptyBody) {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'ExamRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	if strings.Contains(errMsg, "decode JSON") {
		return "Invalid JSON document"
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "gt":
		return "must be positive"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
