package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativePath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{name: "base itself", path: base, want: ".", wantOK: true},
		{name: "base with trailing separator", path: base + string(filepath.Separator), want: ".", wantOK: true},
		{name: "direct child", path: filepath.Join(base, "app.exe"), want: "app.exe", wantOK: true},
		{name: "nested child", path: filepath.Join(base, "tools", "bin", "app.exe"), want: filepath.Join("tools", "bin", "app.exe"), wantOK: true},
		{name: "relative input is rejected", path: filepath.Join("tools", "app.exe"), wantOK: false},
		{name: "relative dot is rejected", path: ".", wantOK: false},
		{name: "parent", path: filepath.Dir(base), wantOK: false},
		{name: "sibling", path: filepath.Join(filepath.Dir(base), "other"), wantOK: false},
		{name: "escaping relative", path: filepath.Join("..", "x"), wantOK: false},
		{name: "name starting with dots stays inside", path: filepath.Join(base, "..hidden"), want: "..hidden", wantOK: true},
		{name: "empty", path: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RelativePath(tt.path, base)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsRegularFileAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.sh")
	require.NoError(t, os.WriteFile(file, []byte("#!/bin/sh\n"), 0755))

	assert.True(t, IsRegularFile(file))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "missing")))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(dir, "missing")))
}
