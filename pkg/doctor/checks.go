package doctor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// CommandExecutor is an interface for probing the system, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	FileExists(path string) bool
	IsDir(path string) bool
}

// RealExecutor is the default executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// FileExists reports whether path is a regular file.
func (e *RealExecutor) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path is a directory.
func (e *RealExecutor) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// shellFor returns the interpreter the launcher starts apps through.
func shellFor(goos string) string {
	if goos == "windows" {
		return "cmd.exe"
	}
	return "sh"
}

// CheckShell checks that the launcher's command interpreter is on PATH.
func CheckShell(exec CommandExecutor, goos string) Check {
	shell := shellFor(goos)
	check := Check{
		ID:          IDShell,
		Name:        "Command interpreter",
		Description: "Starts apps and batch scripts (" + shell + ")",
	}

	path, err := exec.LookPath(shell)
	if err != nil {
		check.Status = StatusMissing
		check.Message = shell + " not found on PATH"
		return check
	}

	check.Status = StatusOK
	check.Message = path
	return check
}

// CheckIcons reports whether executable icons can be extracted.
func CheckIcons(goos string) Check {
	check := Check{
		ID:          IDIcons,
		Name:        "Icon extraction",
		Description: "Reads shell icons from executables",
	}

	if goos == "windows" {
		check.Status = StatusOK
		check.Message = "shell image list available"
		return check
	}

	check.Status = StatusWarning
	check.Message = "only supported on Windows; image files still work"
	return check
}

// CheckCatalogFile loads the catalog and reports what it holds. The loaded
// catalog is returned for the per-app checks; it is nil when loading failed.
func CheckCatalogFile(path string) (Check, *catalog.Catalog) {
	check := Check{
		ID:          IDCatalogFile,
		Name:        "Catalog file",
		Description: path,
	}

	c, err := catalog.Load(path)
	switch {
	case err == nil:
		check.Status = StatusOK
		check.Message = fmt.Sprintf("%d apps, %d categories", len(c.AppNames()), len(c.CategoryNames()))
		return check, c
	case errors.Is(err, catalog.ErrFileNotExist):
		check.Status = StatusMissing
		check.Message = "not created yet"
		check.FixCommand = &FixCommand{
			Description: "Write a default catalog",
			Command:     "toolbox category list",
		}
	default:
		check.Status = StatusError
		check.Message = err.Error()
	}
	return check, nil
}

// CheckApp checks that an app's executable and working directory exist.
// Relative paths are resolved against baseDir, as the launcher does.
func CheckApp(exec CommandExecutor, name string, app catalog.App, baseDir string) Check {
	check := Check{
		ID:          IDAppPrefix + name,
		Name:        name,
		Description: app.Desc,
	}
	fix := &FixCommand{
		Description: "Point the app at an existing file",
		Command:     fmt.Sprintf("toolbox app edit %q", name),
	}

	appPath := resolve(app.AppPath, baseDir)
	if !exec.FileExists(appPath) {
		check.Status = StatusMissing
		check.Message = "app path not found: " + appPath
		check.FixCommand = fix
		return check
	}

	workingDir := resolve(app.WorkingDir, baseDir)
	if !exec.IsDir(workingDir) {
		check.Status = StatusWarning
		check.Message = "working directory not found: " + workingDir
		check.FixCommand = fix
		return check
	}

	check.Status = StatusOK
	check.Message = appPath
	return check
}

func resolve(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
