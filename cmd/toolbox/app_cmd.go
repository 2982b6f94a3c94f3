package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/tui"
)

// serviceIcons adapts the service's icon commands to tui.IconLoader.
type serviceIcons struct {
	svc *bridge.Service
}

func (s serviceIcons) FromFile(path string) (string, error) {
	url, ok := s.svc.LoadIconFromFile(path)
	if !ok {
		return "", fmt.Errorf("unsupported or unreadable image: %s", path)
	}
	return url, nil
}

func (s serviceIcons) FromExecutable(path string) (string, error) {
	url, ok := s.svc.LoadIconFromApp(path)
	if !ok {
		return "", fmt.Errorf("no icon found in %s", path)
	}
	return url, nil
}

// appFlags are the record fields accepted by app add and app edit.
type appFlags struct {
	path      string
	args      string
	dir       string
	desc      string
	iconFile  string
	appIcon   bool
	newName   string
	formInput bool
}

func (f *appFlags) register(cmd *cobra.Command, withRename bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.path, "path", "", "Executable or script path")
	fl.StringVar(&f.args, "args", "", "Launch arguments, passed through verbatim")
	fl.StringVar(&f.dir, "dir", "", "Working directory")
	fl.StringVar(&f.desc, "desc", "", "Description")
	fl.StringVar(&f.iconFile, "icon", "", "Image file to use as the icon")
	fl.BoolVar(&f.appIcon, "app-icon", false, "Use the executable's own icon")
	fl.BoolVarP(&f.formInput, "interactive", "i", false, "Fill the record in an interactive form")
	if withRename {
		fl.StringVar(&f.newName, "name", "", "New name")
	}
}

// resolveIcon applies --icon or --app-icon to view.
func (f *appFlags) resolveIcon(cmd *cobra.Command, svc *bridge.Service, view *bridge.AppView) {
	icons := serviceIcons{svc: svc}
	switch {
	case f.iconFile != "":
		url, err := icons.FromFile(f.iconFile)
		if err != nil {
			warn(cmd.ErrOrStderr(), "%v", err)
			return
		}
		view.IconURL = url
	case f.appIcon:
		url, err := icons.FromExecutable(view.AppPath)
		if err != nil {
			warn(cmd.ErrOrStderr(), "%v", err)
			return
		}
		view.IconURL = url
	}
}

func newAppCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage registered apps",
	}
	cmd.AddCommand(
		newAppListCmd(opts),
		newAppShowCmd(opts),
		newAppAddCmd(opts),
		newAppEditCmd(opts),
		newAppRenameCmd(opts),
		newAppRemoveCmd(opts),
		newAppLaunchCmd(opts),
	)
	return cmd
}

func newAppListCmd(opts *rootOptions) *cobra.Command {
	var (
		category  string
		available bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List apps, optionally those of one category",
		Example: `  toolbox app list
  toolbox app list --category Editors
  toolbox app list --category Editors --available`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if available && category == "" {
				return errors.New("--available requires --category")
			}

			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			var apps []bridge.AppView
			switch {
			case category == "":
				apps = e.svc.GetAllAppList()
			case available:
				var ok bool
				if apps, ok = e.svc.GetAvailableAppListByCategory(category); !ok {
					return fmt.Errorf("category '%s' does not exist", category)
				}
			default:
				var ok bool
				if apps, ok = e.svc.GetAppListByCategory(category); !ok {
					return fmt.Errorf("category '%s' does not exist", category)
				}
			}
			return printApps(cmd.OutOrStdout(), apps, asJSON)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only apps of this category")
	cmd.Flags().BoolVar(&available, "available", false, "Apps not yet in --category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newAppShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one app record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			view, ok := e.svc.GetApp(args[0])
			if !ok {
				return fmt.Errorf("app '%s' does not exist", args[0])
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
}

func newAppAddCmd(opts *rootOptions) *cobra.Command {
	flags := &appFlags{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a new app",
		Example: `  toolbox app add notepad --path C:\Windows\notepad.exe --app-icon
  toolbox app add build --path ./build.sh --args "--release" --dir ./scripts
  toolbox app add -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			var view bridge.AppView
			if flags.formInput {
				var warnings []string
				view, warnings, err = tui.RunAppForm(tui.FormOptions{
					Mode: tui.ModeAdd,
					Taken: func(name string) bool {
						_, ok := e.svc.GetApp(name)
						return ok
					},
					Icons: serviceIcons{svc: e.svc},
				})
				if errors.Is(err, tui.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				if err != nil {
					return err
				}
				for _, w := range warnings {
					warn(cmd.ErrOrStderr(), "%s", w)
				}
			} else {
				if len(args) == 0 || flags.path == "" {
					return errors.New("a name and --path are required unless --interactive is set")
				}
				dir := flags.dir
				if dir == "" {
					dir = "."
				}
				view = bridge.AppView{
					Name:       args[0],
					AppPath:    flags.path,
					LaunchArgs: flags.args,
					WorkingDir: dir,
					Desc:       flags.desc,
				}
				flags.resolveIcon(cmd, e.svc, &view)
			}

			if err := check(e.svc.AddApp(view), "failed to add app '%s'", view.Name); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Added app %s", view.Name)
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}

func newAppEditCmd(opts *rootOptions) *cobra.Command {
	flags := &appFlags{}

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit an app record",
		Long: `Edit an app record. Without field flags an interactive form is shown,
pre-filled with the current values. Renaming keeps the app's category
memberships.`,
		Example: `  toolbox app edit build --args "--debug"
  toolbox app edit build --name build-release
  toolbox app edit build`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			name := args[0]
			current, ok := e.svc.GetApp(name)
			if !ok {
				return fmt.Errorf("app '%s' does not exist", name)
			}

			fl := cmd.Flags()
			patch := fl.Changed("path") || fl.Changed("args") || fl.Changed("dir") ||
				fl.Changed("desc") || fl.Changed("icon") || fl.Changed("app-icon") || fl.Changed("name")

			view := current
			if flags.formInput || !patch {
				var warnings []string
				view, warnings, err = tui.RunAppForm(tui.FormOptions{
					Mode:     tui.ModeEdit,
					Existing: &current,
					Taken: func(candidate string) bool {
						if candidate == name {
							return false
						}
						_, ok := e.svc.GetApp(candidate)
						return ok
					},
					Icons: serviceIcons{svc: e.svc},
				})
				if errors.Is(err, tui.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				if err != nil {
					return err
				}
				for _, w := range warnings {
					warn(cmd.ErrOrStderr(), "%s", w)
				}
			} else {
				if fl.Changed("name") {
					view.Name = flags.newName
				}
				if fl.Changed("path") {
					view.AppPath = flags.path
				}
				if fl.Changed("args") {
					view.LaunchArgs = flags.args
				}
				if fl.Changed("dir") {
					view.WorkingDir = flags.dir
				}
				if fl.Changed("desc") {
					view.Desc = flags.desc
				}
				flags.resolveIcon(cmd, e.svc, &view)
			}

			if err := check(e.svc.UpdateApp(name, view), "failed to update app '%s'", name); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Updated app %s", view.Name)
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

func newAppRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename an app, keeping its category memberships",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			view, ok := e.svc.GetApp(args[0])
			if !ok {
				return fmt.Errorf("app '%s' does not exist", args[0])
			}
			view.Name = args[1]
			if err := check(e.svc.UpdateApp(args[0], view), "failed to rename app '%s' to '%s'", args[0], args[1]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Renamed app %s to %s", args[0], args[1])
			return nil
		},
	}
}

func newAppRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an app and its category memberships",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			if err := check(e.svc.RemoveApp(args[0]), "failed to remove app '%s'", args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Removed app %s", args[0])
			return nil
		},
	}
}

func newAppLaunchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "launch <name>",
		Short: "Launch an app as a detached process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			if err := check(e.svc.LaunchApp(args[0]), "failed to launch app '%s'", args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Launched %s", args[0])
			return nil
		},
	}
}
