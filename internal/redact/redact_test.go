package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/scry-docgen/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "template must hold at least 4 slides",
			expected: "template must hold at least 4 slides",
		},
		{
			name:     "package part names stay readable",
			input:    "malformed part ppt/slides/_rels/slide3.xml.rels",
			expected: "malformed part ppt/slides/_rels/slide3.xml.rels",
		},
		{
			name:     "absolute path",
			input:    "open /srv/docgen/templates/default.pptx: no such file or directory",
			expected: "open [REDACTED_PATH]: no such file or directory",
		},
		{
			name:     "path at start",
			input:    "/etc/docgen/config.yaml is unreadable",
			expected: "[REDACTED_PATH] is unreadable",
		},
		{
			name:     "windows path",
			input:    `read C:\Users\lan\deck.pptx failed`,
			expected: "read [REDACTED_PATH] failed",
		},
		{
			name:     "slide markup",
			input:    `unexpected run <a:t>Nguyễn Văn A</a:t> in placeholder`,
			expected: "unexpected run [REDACTED_XML] in placeholder",
		},
		{
			name:     "email address",
			input:    "owner giaovien@truong.edu.vn rejected",
			expected: "owner [REDACTED_EMAIL] rejected",
		},
		{
			name:     "credential",
			input:    "upload failed with token=abcdef123456",
			expected: "upload failed with [REDACTED_CREDENTIAL]",
		},
		{
			name:     "stack trace",
			input:    "panic: runtime error\ngoroutine 1 [running]:\nmain.main()\n\t/app/main.go:42",
			expected: "[STACK_TRACE_REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	base := errors.New("open /var/lib/docgen/t.pptx: permission denied")
	wrapped := fmt.Errorf("failed to load default template: %w", base)
	assert.Equal(t,
		"failed to load default template: open [REDACTED_PATH]: permission denied",
		redact.Error(wrapped))
}
