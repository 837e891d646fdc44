package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	assert.False(t, errors.Is(ErrNoTemplate, ErrLimitExceeded))
	assert.False(t, errors.Is(ErrLimitExceeded, ErrUnsupportedFormat))
	assert.False(t, errors.Is(ErrUnsupportedFormat, ErrNoTemplate))
}

func TestDocumentServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DocumentServiceError
		expected string
	}{
		{
			name: "with underlying error",
			err: &DocumentServiceError{
				Operation: "export_exam",
				Message:   "failed to export exam",
				Err:       errors.New("disk full"),
			},
			expected: "document service export_exam failed: failed to export exam: disk full",
		},
		{
			name: "without underlying error",
			err: &DocumentServiceError{
				Operation: "create_service",
				Message:   "assembler cannot be nil",
			},
			expected: "document service create_service failed: assembler cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewDocumentServiceError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, NewDocumentServiceError("op", "msg", nil))
	})

	t.Run("validation error passes through", func(t *testing.T) {
		vErr := domain.NewValidationError("title", "is required", domain.ErrEmptyContent)
		err := NewDocumentServiceError("op", "msg", vErr)
		assert.Same(t, vErr, err)
	})

	t.Run("configuration error passes through", func(t *testing.T) {
		cErr := domain.NewConfigurationError("template is required", ErrNoTemplate)
		err := NewDocumentServiceError("op", "msg", cErr)
		assert.Same(t, cErr, err)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewDocumentServiceError("export_exam", "failed to export exam", cause)

		var serviceErr *DocumentServiceError
		assert.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, "export_exam", serviceErr.Operation)
		assert.ErrorIs(t, err, cause)
	})
}
