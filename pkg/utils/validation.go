package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameLength is the maximum length for an app or category name.
	MaxNameLength = 64
	// MinNameLength is the minimum length for an app or category name.
	MinNameLength = 1
)

// multipleSpacesPattern matches one or more consecutive whitespace characters.
var multipleSpacesPattern = regexp.MustCompile(`\s+`)

// ValidateName validates an app or category name entered by the user.
// Returns an error if the name is invalid.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name cannot contain control characters")
		}
	}

	return nil
}

// SanitizeName cleans up a name before it is stored.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	// Collapse runs of whitespace (including tabs and newlines)
	name = multipleSpacesPattern.ReplaceAllString(name, " ")

	// Truncate if too long
	if utf8.RuneCountInString(name) > MaxNameLength {
		runes := []rune(name)
		name = strings.TrimSpace(string(runes[:MaxNameLength]))
	}

	return name
}
