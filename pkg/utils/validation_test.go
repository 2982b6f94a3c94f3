package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid simple name",
			input:     "notepad",
			wantError: false,
		},
		{
			name:      "valid with spaces and punctuation",
			input:     "Visual Studio Code (x64)",
			wantError: false,
		},
		{
			name:      "valid non-ascii",
			input:     "开发工具",
			wantError: false,
		},
		{
			name:      "valid with path separators",
			input:     "tools/build",
			wantError: false,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
			errorMsg:  "cannot be empty",
		},
		{
			name:      "only whitespace",
			input:     "   ",
			wantError: true,
			errorMsg:  "cannot be empty",
		},
		{
			name:      "too long",
			input:     strings.Repeat("a", 65),
			wantError: true,
			errorMsg:  "cannot exceed",
		},
		{
			name:      "max length is valid",
			input:     strings.Repeat("好", 64),
			wantError: false,
		},
		{
			name:      "control character",
			input:     "bad\x07name",
			wantError: true,
			errorMsg:  "control characters",
		},
		{
			name:      "embedded newline",
			input:     "two\nlines",
			wantError: true,
			errorMsg:  "control characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trim whitespace",
			input:    "  my app  ",
			expected: "my app",
		},
		{
			name:     "collapse multiple spaces",
			input:    "my    app\tname",
			expected: "my app name",
		},
		{
			name:     "truncate long name",
			input:    strings.Repeat("a", 70),
			expected: strings.Repeat("a", 64),
		},
		{
			name:     "normal name unchanged",
			input:    "my-app",
			expected: "my-app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
