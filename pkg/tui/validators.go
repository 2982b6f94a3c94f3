package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/utils"
)

// validateRequired returns a validator that ensures a field is not empty.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateAppName checks the name format and that no other app uses it.
func validateAppName(opts FormOptions) func(string) error {
	return func(s string) error {
		if err := utils.ValidateName(s); err != nil {
			return err
		}
		// Compare the name as it will be stored
		s = utils.SanitizeName(s)
		if opts.Existing != nil && s == opts.Existing.Name {
			return nil
		}
		if opts.Taken != nil && opts.Taken(s) {
			return fmt.Errorf("app '%s' already exists", s)
		}
		return nil
	}
}

// validateAppPath ensures the path names an existing regular file.
func validateAppPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("app path is required")
	}

	s = expandHome(s)
	if !utils.IsRegularFile(s) {
		if utils.IsDir(s) {
			return fmt.Errorf("path is a directory, not a file")
		}
		return fmt.Errorf("file not found: %s", s)
	}
	return nil
}

// validateWorkingDir ensures the path names an existing directory.
func validateWorkingDir(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("working directory is required")
	}

	s = expandHome(s)
	if !utils.IsDir(s) {
		return fmt.Errorf("directory not found: %s", s)
	}
	return nil
}

// validateIconFile accepts an empty path or an existing image file.
func validateIconFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !utils.IsRegularFile(expandHome(s)) {
		return fmt.Errorf("file not found: %s", s)
	}
	return nil
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(s string) string {
	if !strings.HasPrefix(s, "~/") {
		return s
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return s
	}
	return filepath.Join(home, s[2:])
}
