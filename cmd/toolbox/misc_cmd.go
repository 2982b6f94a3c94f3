package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

func newIconCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Turn images and executables into icon data URLs",
	}

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Read an image file as a data URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			url, ok := e.svc.LoadIconFromFile(args[0])
			if !ok {
				return fmt.Errorf("failed to load icon from %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	appCmd := &cobra.Command{
		Use:   "app <path>",
		Short: "Extract an executable's icon as a PNG data URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			url, ok := e.svc.LoadIconFromApp(args[0])
			if !ok {
				return fmt.Errorf("failed to extract icon from %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.AddCommand(fileCmd, appCmd)
	return cmd
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show and change the UI theme",
	}

	var asJSON bool
	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets := catalog.Presets()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), presets)
			}
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				rows = append(rows, []string{p.Name, p.Theme.CSS()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"NAME", "CSS"}, rows))
			return nil
		},
	}
	presetsCmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current theme as CSS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			fmt.Fprintln(cmd.OutOrStdout(), e.svc.GetConfigBasicInfo().Theme.CSS())
			return nil
		},
	}

	applyCmd := &cobra.Command{
		Use:   "apply <preset|#rrggbb>",
		Short: "Apply a preset or a solid colour",
		Example: `  toolbox theme apply violet
  toolbox theme apply "#3366cc"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := parseTheme(args[0])
			if err != nil {
				return err
			}

			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			info := e.svc.GetConfigBasicInfo()
			info.Theme = theme
			if err := check(e.svc.SetConfigBasicInfo(info), "failed to apply theme"); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Theme set to %s", theme.CSS())
			return nil
		},
	}

	cmd.AddCommand(presetsCmd, showCmd, applyCmd)
	return cmd
}

// parseTheme accepts a preset name or a hex colour.
func parseTheme(s string) (catalog.Theme, error) {
	if theme, ok := catalog.PresetByName(s); ok {
		return theme, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return catalog.Solid{Color: catalog.RGB{R: r, G: g, B: b}}, nil
	}
	return nil, fmt.Errorf("unknown theme %q: use a preset name or #rrggbb", s)
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	var (
		header  string
		author  string
		version string
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show or change header text, author and toolbox version",
		Example: `  toolbox info
  toolbox info --header "Team Tools" --author ops --toolbox-version 1.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			info := e.svc.GetConfigBasicInfo()
			fl := cmd.Flags()
			if !fl.Changed("header") && !fl.Changed("author") && !fl.Changed("toolbox-version") {
				return printJSON(cmd.OutOrStdout(), info)
			}

			if fl.Changed("header") {
				info.HeaderText = header
			}
			if fl.Changed("author") {
				info.Author = nil
				if author != "" {
					info.Author = &author
				}
			}
			if fl.Changed("toolbox-version") {
				info.ToolboxVersion = nil
				if version != "" {
					v, err := parseVersion(version)
					if err != nil {
						return err
					}
					info.ToolboxVersion = &v
				}
			}

			if err := check(e.svc.SetConfigBasicInfo(info), "failed to update catalog info"); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Catalog info updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "Header text")
	cmd.Flags().StringVar(&author, "author", "", "Author (empty clears it)")
	cmd.Flags().StringVar(&version, "toolbox-version", "", "Toolbox version as major.minor (empty clears it)")
	return cmd
}

// parseVersion reads "major.minor".
func parseVersion(s string) (catalog.ToolboxVersion, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return catalog.ToolboxVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}
	ma, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return catalog.ToolboxVersion{}, fmt.Errorf("invalid major version %q", major)
	}
	mi, err := strconv.ParseUint(minor, 10, 32)
	if err != nil {
		return catalog.ToolboxVersion{}, fmt.Errorf("invalid minor version %q", minor)
	}
	return catalog.ToolboxVersion{Major: uint32(ma), Minor: uint32(mi)}, nil
}

func newLangCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [tag]",
		Short: "Show or set the UI language",
		Long:  fmt.Sprintf("Show or set the UI language. Supported: %s.", strings.Join(bridge.SupportedLangs, ", ")),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), e.svc.GetLang())
				return nil
			}
			if err := check(e.svc.SetLang(args[0]), "unsupported language %q", args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Language set to %s", e.svc.GetLang())
			return nil
		},
	}
}

func newRelpathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "relpath <path>",
		Short: "Print a path relative to the working directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			rel, ok := e.svc.GetRelativePath(path)
			if !ok {
				return errors.New("path is not below the working directory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), rel)
			return nil
		},
	}
}
