package tui

import (
	"github.com/charmbracelet/huh"
)

// buildAppForm creates the app form: identity and launch details first,
// then presentation.
func buildAppForm(result *AppFormResult, opts FormOptions) *huh.Form {
	title := "Register App"
	if opts.Mode == ModeEdit {
		title = "Edit App"
	}

	launchFields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Description("Unique name shown in the toolbox").
			Placeholder("notepad").
			Value(&result.Name).
			Validate(validateAppName(opts)),

		huh.NewInput().
			Title("App Path").
			Description("Executable or batch script to launch").
			Placeholder(`C:\Windows\notepad.exe`).
			Value(&result.AppPath).
			Validate(validateAppPath),

		huh.NewInput().
			Title("Launch Arguments").
			Description("Passed to the app verbatim (optional)").
			Value(&result.LaunchArgs),

		huh.NewInput().
			Title("Working Directory").
			Description("Directory the app starts in").
			Placeholder(".").
			Value(&result.WorkingDir).
			Validate(validateWorkingDir),
	}

	presentationFields := []huh.Field{
		huh.NewText().
			Title("Description").
			Description("Shown under the app name (optional)").
			CharLimit(500).
			Value(&result.Desc),

		huh.NewConfirm().
			Title("Use the app's own icon?").
			Description("Extracted from the executable when supported").
			Affirmative("Yes").
			Negative("No").
			Value(&result.UseAppIcon),
	}

	groups := []*huh.Group{
		huh.NewGroup(launchFields...).
			Title(title).
			Description("What to launch and how"),

		huh.NewGroup(presentationFields...).
			Title("Presentation"),

		// Only asked when the executable's icon is not wanted
		huh.NewGroup(
			huh.NewInput().
				Title("Icon File").
				Description("Image file for the icon (optional)").
				Placeholder("icon.png").
				Value(&result.IconFile).
				Validate(validateIconFile),
		).WithHideFunc(func() bool { return result.UseAppIcon }),
	}

	return huh.NewForm(groups...).
		WithTheme(Theme()).
		WithShowHelp(true).
		WithShowErrors(true)
}
