// Package launcher starts registered apps as detached processes.
package launcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/utils"
)

// Win32 process creation flags.
const (
	DetachedProcess  uint32 = 0x00000008
	CreateNewConsole uint32 = 0x00000010
)

var (
	// ErrNotFile is returned when an app path is not a regular file.
	ErrNotFile = errors.New("app path is not a file")
	// ErrNotDir is returned when a working directory is not a directory.
	ErrNotDir = errors.New("working directory is not a directory")
	// ErrUnsupported is returned on platforms without a spawn strategy.
	ErrUnsupported = errors.New("launching apps is not supported on this platform")
)

// Command is a resolved process invocation.
type Command struct {
	Path string   // Program to start
	Args []string // Full argv, Args[0] included
	Dir  string   // Absolute working directory

	// Windows only. CmdLine is handed to CreateProcess unmodified so the
	// user's quoting in the argument tail survives.
	CmdLine       string
	CreationFlags uint32
}

// Spawner starts a command without waiting for it, allowing for testing.
type Spawner interface {
	Spawn(cmd Command) error
}

// ProcessSpawner starts real OS processes.
type ProcessSpawner struct{}

// Launcher resolves apps into commands and hands them to a Spawner.
type Launcher struct {
	spawner Spawner
	goos    string
	logger  *zap.Logger
}

// New creates a launcher that spawns real processes for the host OS.
func New(logger *zap.Logger) *Launcher {
	return NewWithSpawner(&ProcessSpawner{}, runtime.GOOS, logger)
}

// NewWithSpawner creates a launcher with a custom spawner and target OS.
func NewWithSpawner(spawner Spawner, goos string, logger *zap.Logger) *Launcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Launcher{spawner: spawner, goos: goos, logger: logger}
}

// Launch starts app as a detached process. It fails without spawning
// anything when the app path is not a file or the working directory is not
// a directory. Relative paths resolve against the process working directory.
func (l *Launcher) Launch(app catalog.App) error {
	if !utils.IsRegularFile(app.AppPath) {
		return fmt.Errorf("%w: %s", ErrNotFile, app.AppPath)
	}
	if !utils.IsDir(app.WorkingDir) {
		return fmt.Errorf("%w: %s", ErrNotDir, app.WorkingDir)
	}

	absPath, err := filepath.Abs(app.AppPath)
	if err != nil {
		return fmt.Errorf("failed to resolve app path: %w", err)
	}
	absDir, err := filepath.Abs(app.WorkingDir)
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	cmd := BuildCommand(l.goos, absPath, app.LaunchArgs, absDir)
	l.logger.Debug("spawning process",
		zap.String("path", cmd.Path),
		zap.Strings("args", cmd.Args),
		zap.String("dir", cmd.Dir),
		zap.Uint32("creation_flags", cmd.CreationFlags),
	)

	if err := l.spawner.Spawn(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", absPath, err)
	}
	return nil
}

// BuildCommand builds the invocation for an app on goos. The launch
// argument tail is pasted verbatim after the program path.
func BuildCommand(goos, absPath, launchArgs, absDir string) Command {
	if goos == "windows" {
		return buildWindowsCommand(absPath, launchArgs, absDir)
	}
	return buildShellCommand(absPath, launchArgs, absDir)
}

// buildWindowsCommand runs the app through cmd.exe /C. cmd strips the
// outermost pair of quotes from the rest of the line, so the quoted program
// path and the raw tail are wrapped in one more pair.
func buildWindowsCommand(absPath, launchArgs, absDir string) Command {
	inner := `"` + absPath + `"`
	if launchArgs != "" {
		inner += " " + launchArgs
	}

	flags := DetachedProcess
	if IsBatchFile(absPath) {
		flags = CreateNewConsole
	}

	return Command{
		Path:          "cmd.exe",
		Args:          []string{"cmd.exe", "/C", inner},
		Dir:           absDir,
		CmdLine:       `cmd.exe /C "` + inner + `"`,
		CreationFlags: flags,
	}
}

func buildShellCommand(absPath, launchArgs, absDir string) Command {
	script := shellQuote(absPath)
	if launchArgs != "" {
		script += " " + launchArgs
	}
	return Command{
		Path: "sh",
		Args: []string{"sh", "-c", script},
		Dir:  absDir,
	}
}

// IsBatchFile reports whether path has a .bat or .cmd extension.
func IsBatchFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepathExt(path), "."))
	return ext == "bat" || ext == "cmd"
}

// filepathExt handles both separators so Windows paths classify correctly
// on any host.
func filepathExt(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
