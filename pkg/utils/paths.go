package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// RelativePath returns path relative to base when path is base itself or
// lies below it. The second result is false when path is empty, not
// absolute, or outside base.
func RelativePath(path, base string) (string, bool) {
	if path == "" || !filepath.IsAbs(path) {
		return "", false
	}
	base = filepath.Clean(base)
	path = filepath.Clean(path)

	if path == base {
		return ".", true
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		// Different volumes on Windows
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// IsRegularFile reports whether path names an existing regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
