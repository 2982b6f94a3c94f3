package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/utils"
)

// ErrCancelled is returned when the user aborts the form.
var ErrCancelled = errors.New("form cancelled")

// RunAppForm executes the interactive app form and returns the record to
// store.
func RunAppForm(opts FormOptions) (bridge.AppView, []string, error) {
	result := NewResult(opts)

	if err := buildAppForm(result, opts).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return bridge.AppView{}, nil, ErrCancelled
		}
		return bridge.AppView{}, nil, fmt.Errorf("form failed: %w", err)
	}

	warnings := Finalize(result, opts.Icons)
	return result.View(), warnings, nil
}

// Finalize cleans up the name and trims input, expands ~ in paths and
// resolves the icon. Icon
// failures do not abort: they come back as warnings and leave the icon as
// it was.
func Finalize(result *AppFormResult, icons IconLoader) []string {
	result.Name = utils.SanitizeName(result.Name)
	result.AppPath = expandHome(strings.TrimSpace(result.AppPath))
	result.WorkingDir = expandHome(strings.TrimSpace(result.WorkingDir))
	result.Desc = strings.TrimSpace(result.Desc)

	if icons == nil {
		return nil
	}

	var warnings []string
	switch {
	case result.UseAppIcon:
		url, err := icons.FromExecutable(result.AppPath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not extract icon from %s: %v", result.AppPath, err))
			break
		}
		result.IconURL = url
	case strings.TrimSpace(result.IconFile) != "":
		path := expandHome(strings.TrimSpace(result.IconFile))
		url, err := icons.FromFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not load icon %s: %v", path, err))
			break
		}
		result.IconURL = url
	}
	return warnings
}
