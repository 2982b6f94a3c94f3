package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// MockSpawner records spawned commands instead of starting them.
type MockSpawner struct {
	SpawnFunc func(cmd Command) error
	Spawned   []Command
}

func (m *MockSpawner) Spawn(cmd Command) error {
	m.Spawned = append(m.Spawned, cmd)
	if m.SpawnFunc != nil {
		return m.SpawnFunc(cmd)
	}
	return nil
}

func writeApp(t *testing.T, name string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path, dir
}

func TestBuildCommand_Windows(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		args        string
		wantCmdLine string
		wantFlags   uint32
	}{
		{
			name:        "gui executable",
			path:        `C:\Tools\app.exe`,
			args:        "--test-arg",
			wantCmdLine: `cmd.exe /C ""C:\Tools\app.exe" --test-arg"`,
			wantFlags:   DetachedProcess,
		},
		{
			name:        "batch file",
			path:        `C:\Tools\build.bat`,
			args:        "",
			wantCmdLine: `cmd.exe /C ""C:\Tools\build.bat""`,
			wantFlags:   CreateNewConsole,
		},
		{
			name:        "upper case cmd extension",
			path:        `C:\Tools\SETUP.CMD`,
			args:        "/quiet",
			wantCmdLine: `cmd.exe /C ""C:\Tools\SETUP.CMD" /quiet"`,
			wantFlags:   CreateNewConsole,
		},
		{
			name:        "raw quoted tail with spaces in path",
			path:        `C:\Program Files\Tool\tool.exe`,
			args:        `--out "C:\my dir" -v`,
			wantCmdLine: `cmd.exe /C ""C:\Program Files\Tool\tool.exe" --out "C:\my dir" -v"`,
			wantFlags:   DetachedProcess,
		},
		{
			name:        "dotted directory is not an extension",
			path:        `C:\scripts.bat\tool`,
			args:        "",
			wantCmdLine: `cmd.exe /C ""C:\scripts.bat\tool""`,
			wantFlags:   DetachedProcess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := BuildCommand("windows", tt.path, tt.args, `C:\Work`)

			assert.Equal(t, "cmd.exe", cmd.Path)
			assert.Equal(t, tt.wantCmdLine, cmd.CmdLine)
			assert.Equal(t, tt.wantFlags, cmd.CreationFlags)
			assert.Equal(t, `C:\Work`, cmd.Dir)
		})
	}
}

func TestBuildCommand_Shell(t *testing.T) {
	cmd := BuildCommand("linux", "/opt/my tools/run.sh", `--name "a b"`, "/tmp")

	assert.Equal(t, "sh", cmd.Path)
	assert.Equal(t, []string{"sh", "-c", `'/opt/my tools/run.sh' --name "a b"`}, cmd.Args)
	assert.Equal(t, "/tmp", cmd.Dir)
	assert.Empty(t, cmd.CmdLine)
	assert.Zero(t, cmd.CreationFlags)

	cmd = BuildCommand("darwin", "/opt/it's/run", "", "/")
	assert.Equal(t, `'/opt/it'\''s/run'`, cmd.Args[2])
}

func TestIsBatchFile(t *testing.T) {
	assert.True(t, IsBatchFile("build.bat"))
	assert.True(t, IsBatchFile(`C:\x\Build.BAT`))
	assert.True(t, IsBatchFile("/x/setup.cmd"))
	assert.False(t, IsBatchFile("app.exe"))
	assert.False(t, IsBatchFile("bat"))
	assert.False(t, IsBatchFile(""))
}

func TestLauncher_Launch(t *testing.T) {
	path, dir := writeApp(t, "tool.sh")
	spawner := &MockSpawner{}
	l := NewWithSpawner(spawner, "linux", nil)

	err := l.Launch(catalog.App{AppPath: path, LaunchArgs: "--test-arg", WorkingDir: dir})

	require.NoError(t, err)
	require.Len(t, spawner.Spawned, 1)
	assert.Equal(t, dir, spawner.Spawned[0].Dir)
	assert.Equal(t, shellQuote(path)+" --test-arg", spawner.Spawned[0].Args[2])
}

func TestLauncher_Launch_ResolvesRelativePaths(t *testing.T) {
	path, dir := writeApp(t, "tool.bat")
	t.Chdir(dir)
	spawner := &MockSpawner{}
	l := NewWithSpawner(spawner, "windows", nil)

	err := l.Launch(catalog.App{AppPath: filepath.Base(path), WorkingDir: "."})

	require.NoError(t, err)
	require.Len(t, spawner.Spawned, 1)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, spawner.Spawned[0].Dir)
	assert.Contains(t, spawner.Spawned[0].CmdLine, filepath.Join(cwd, "tool.bat"))
	assert.Equal(t, CreateNewConsole, spawner.Spawned[0].CreationFlags)
}

func TestLauncher_Launch_Validation(t *testing.T) {
	path, dir := writeApp(t, "tool.sh")

	tests := []struct {
		name    string
		app     catalog.App
		wantErr error
	}{
		{name: "missing app path", app: catalog.App{AppPath: filepath.Join(dir, "missing"), WorkingDir: dir}, wantErr: ErrNotFile},
		{name: "app path is a directory", app: catalog.App{AppPath: dir, WorkingDir: dir}, wantErr: ErrNotFile},
		{name: "missing working dir", app: catalog.App{AppPath: path, WorkingDir: filepath.Join(dir, "missing")}, wantErr: ErrNotDir},
		{name: "working dir is a file", app: catalog.App{AppPath: path, WorkingDir: path}, wantErr: ErrNotDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := &MockSpawner{}
			l := NewWithSpawner(spawner, "linux", nil)

			err := l.Launch(tt.app)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, spawner.Spawned, "nothing is spawned on validation failure")
		})
	}
}

func TestLauncher_Launch_SpawnError(t *testing.T) {
	path, dir := writeApp(t, "tool.sh")
	spawnErr := errors.New("access denied")
	l := NewWithSpawner(&MockSpawner{SpawnFunc: func(Command) error { return spawnErr }}, "linux", nil)

	err := l.Launch(catalog.App{AppPath: path, WorkingDir: dir})

	assert.ErrorIs(t, err, spawnErr)
}

func TestProcessSpawner_Spawn(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the sh spawn strategy")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	script := filepath.Join(dir, "touch.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ntouch \"$1\"\n"), 0755))

	l := New(nil)
	err := l.Launch(catalog.App{AppPath: script, LaunchArgs: shellQuote(marker), WorkingDir: dir})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
}
