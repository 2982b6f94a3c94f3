package tui

import "github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"

// FormMode selects between registering a new app and editing one.
type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

// AppFormResult holds all collected user input.
type AppFormResult struct {
	Name       string
	AppPath    string
	LaunchArgs string
	WorkingDir string
	Desc       string
	IconURL    string
	// UseAppIcon asks for the executable's own icon to be extracted.
	UseAppIcon bool
	// IconFile is an image to use instead of the executable's icon.
	IconFile string
}

// IconLoader turns files into data URLs.
type IconLoader interface {
	FromFile(path string) (string, error)
	FromExecutable(path string) (string, error)
}

// FormOptions configures the behavior of RunAppForm.
type FormOptions struct {
	Mode FormMode
	// Existing pre-fills the form when editing.
	Existing *bridge.AppView
	// Taken reports whether a name is already registered. The name being
	// edited is never reported as taken.
	Taken func(name string) bool
	// Icons fills IconURL after the form; nil leaves it unchanged.
	Icons IconLoader
}

// NewResult pre-fills a result from opts.
func NewResult(opts FormOptions) *AppFormResult {
	result := &AppFormResult{
		WorkingDir: ".",
		UseAppIcon: true,
	}
	if opts.Existing != nil {
		e := opts.Existing
		result.Name = e.Name
		result.AppPath = e.AppPath
		result.LaunchArgs = e.LaunchArgs
		result.WorkingDir = e.WorkingDir
		result.Desc = e.Desc
		result.IconURL = e.IconURL
		// Keep the current icon unless asked to replace it
		result.UseAppIcon = e.IconURL == ""
	}
	return result
}

// View converts the result into the record the catalog stores.
func (r *AppFormResult) View() bridge.AppView {
	return bridge.AppView{
		Name:       r.Name,
		AppPath:    r.AppPath,
		LaunchArgs: r.LaunchArgs,
		WorkingDir: r.WorkingDir,
		Desc:       r.Desc,
		IconURL:    r.IconURL,
	}
}
